package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongodbRepo_EnsureConciergeIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates session and favourites indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		repo := MongodbNewRepo(mt.Client, "carnival_test")
		require.NoError(mt, repo.EnsureConciergeIndexes(context.Background()))
	})

	mt.Run("favourites index failure is reported", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11000,
				Name:    "DuplicateKey",
				Message: "E11000 duplicate key error collection: favourites",
			}),
		)

		repo := MongodbNewRepo(mt.Client, "carnival_test")
		err := repo.EnsureConciergeIndexes(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "favourites index")
	})

	mt.Run("session index failure stops early", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		repo := MongodbNewRepo(mt.Client, "carnival_test")
		err := repo.EnsureConciergeIndexes(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "error creating indexes")
	})
}
