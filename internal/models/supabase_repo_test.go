package models

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/supabase-go"
)

func TestClassifyPostgrestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", errors.New(`(23505) duplicate key value violates unique constraint "band_votes_user_year_key"`), ErrConflict},
		{"duplicate key text only", errors.New("duplicate key value violates unique constraint"), ErrConflict},
		{"inventory trigger", errors.New("(P0001) insufficient_inventory"), ErrNoAvailability},
		{"single row missing", errors.New("(PGRST116) JSON object requested, multiple (or no) rows returned"), ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyPostgrestError("op", tt.err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), "op: ")
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, classifyPostgrestError("op", nil))
	})

	t.Run("other failures carry no sentinel", func(t *testing.T) {
		err := classifyPostgrestError("op", errors.New("(42501) permission denied for table hotels"))
		require.Error(t, err)
		for _, sentinel := range []error{ErrConflict, ErrNoAvailability, ErrNotFound} {
			assert.False(t, errors.Is(err, sentinel))
		}
		assert.Contains(t, err.Error(), "permission denied")
	})
}

type restCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type restReply struct {
	Status       int
	Body         string
	ContentRange string
}

// restStub answers PostgREST requests from a queue of canned replies.
type restStub struct {
	mu      sync.Mutex
	calls   []restCall
	replies []restReply
}

func newRestStub(t *testing.T, replies ...restReply) (*restStub, *SupabaseRepo) {
	t.Helper()
	stub := &restStub{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.calls = append(stub.calls, restCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
		if len(stub.replies) == 0 {
			stub.mu.Unlock()
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"XX000","message":"unexpected request"}`))
			return
		}
		reply := stub.replies[0]
		stub.replies = stub.replies[1:]
		stub.mu.Unlock()

		if reply.ContentRange != "" {
			w.Header().Set("Content-Range", reply.ContentRange)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.Status)
		_, _ = w.Write([]byte(reply.Body))
	}))
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(srv.URL, "test-service-key", nil)
	require.NoError(t, err)
	return stub, SupabaseNewRepo(client)
}

func (s *restStub) Calls() []restCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]restCall(nil), s.calls...)
}

func TestSupabaseRepo_InsertVoteConflict(t *testing.T) {
	stub, repo := newRestStub(t, restReply{
		Status: http.StatusConflict,
		Body:   `{"code":"23505","message":"duplicate key value violates unique constraint \"band_votes_user_year_key\"","details":null,"hint":null}`,
	})

	err := repo.InsertVote(context.Background(), &BandVote{ID: uuid.New(), UserID: uuid.New(), BandID: uuid.New(), Year: 2025})
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/rest/v1/"+BandVotesTable, calls[0].Path)
	assert.Contains(t, calls[0].Body, `"year":2025`)
}

func TestSupabaseRepo_CreateBookingWithoutInventory(t *testing.T) {
	_, repo := newRestStub(t, restReply{
		Status: http.StatusBadRequest,
		Body:   `{"code":"P0001","message":"insufficient_inventory","details":null,"hint":null}`,
	})

	_, err := repo.CreateBooking(context.Background(), &HotelBooking{ID: uuid.New(), Rooms: 3})
	assert.True(t, errors.Is(err, ErrNoAvailability), "got %v", err)
}

func TestSupabaseRepo_MarkBookingPaid(t *testing.T) {
	paidAt := time.Date(2025, time.December, 20, 10, 0, 0, 0, time.UTC)

	t.Run("pending booking is updated", func(t *testing.T) {
		stub, repo := newRestStub(t, restReply{
			Status: http.StatusOK,
			Body:   `[{"booking_reference":"CXB-AB12CD34","status":"confirmed","payment_status":"paid","payment_reference":"PSK-1"}]`,
		})

		booking, changed, err := repo.MarkBookingPaid(context.Background(), "CXB-AB12CD34", "PSK-1", paidAt)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, PaymentPaid, booking.PaymentStatus)

		calls := stub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodPatch, calls[0].Method)
		assert.Contains(t, calls[0].Query, "payment_status=neq.paid")
	})

	t.Run("already paid booking is returned unchanged", func(t *testing.T) {
		stub, repo := newRestStub(t,
			restReply{Status: http.StatusOK, Body: `[]`},
			restReply{Status: http.StatusOK, Body: `[{"booking_reference":"CXB-AB12CD34","status":"confirmed","payment_status":"paid","payment_reference":"PSK-1"}]`},
		)

		booking, changed, err := repo.MarkBookingPaid(context.Background(), "CXB-AB12CD34", "PSK-2", paidAt)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "PSK-1", booking.PaymentReference)

		calls := stub.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, http.MethodPatch, calls[0].Method)
		assert.Equal(t, http.MethodGet, calls[1].Method)
		assert.Contains(t, calls[1].Query, "booking_reference=eq.CXB-AB12CD34")
	})

	t.Run("unknown reference is not found", func(t *testing.T) {
		_, repo := newRestStub(t,
			restReply{Status: http.StatusOK, Body: `[]`},
			restReply{Status: http.StatusOK, Body: `[]`},
		)

		_, changed, err := repo.MarkBookingPaid(context.Background(), "CXB-NOPE0000", "PSK-3", paidAt)
		assert.False(t, changed)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestSupabaseRepo_ListBookingsReadsExactCount(t *testing.T) {
	stub, repo := newRestStub(t, restReply{
		Status:       http.StatusOK,
		Body:         `[{"booking_reference":"CXB-AAAA1111"}]`,
		ContentRange: "0-0/3",
	})

	rows, total, err := repo.ListBookingsByUser(context.Background(), uuid.New(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "CXB-AAAA1111", rows[0].BookingReference)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Query, "order=created_at.desc")
}

func TestSupabaseRepo_HotelSearchIsQuoted(t *testing.T) {
	stub, repo := newRestStub(t, restReply{Status: http.StatusOK, Body: `[]`, ContentRange: "*/0"})

	_, _, err := repo.ListHotels(context.Background(), HotelFilter{Search: `Bay, (Marina) "Suites"`, Limit: 10})
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, `(name.ilike."%Bay, (Marina) \"Suites\"%",address.ilike."%Bay, (Marina) \"Suites\"%")`, q.Get("or"))
}

func TestSupabaseRepo_EventRangesShareOneAndTree(t *testing.T) {
	stub, repo := newRestStub(t, restReply{Status: http.StatusOK, Body: `[]`, ContentRange: "*/0"})

	from := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	_, _, err := repo.ListEvents(context.Background(), EventFilter{
		From:   &from,
		To:     &to,
		Bounds: &BoundingBox{MinLat: 4.9, MaxLat: 5, MinLng: 8.3, MaxLng: 8.4},
		Limit:  100,
	})
	require.NoError(t, err)

	calls := stub.Calls()
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "(start_time.gte.2025-12-01T00:00:00Z,start_time.lte.2025-12-31T00:00:00Z,"+
		"latitude.gte.4.9,latitude.lte.5,longitude.gte.8.3,longitude.lte.8.4)", q.Get("and"))
	assert.Empty(t, q.Get("start_time"))
}

func TestSupabaseRepo_HotelPriceRange(t *testing.T) {
	stub, repo := newRestStub(t, restReply{Status: http.StatusOK, Body: `[]`, ContentRange: "*/0"})

	minPrice, maxPrice := 20000.0, 55000.5
	_, _, err := repo.ListHotels(context.Background(), HotelFilter{MinPrice: &minPrice, MaxPrice: &maxPrice, Limit: 10})
	require.NoError(t, err)

	q, err := url.ParseQuery(stub.Calls()[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "(price_min.gte.20000,price_min.lte.55000.5)", q.Get("and"))
}
