package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) CreateGroup(ctx context.Context, group *FamilyGroup) (*FamilyGroup, error) {
	raw, _, err := su.supabaseClient.From(FamilyGroupsTable).
		Insert(group, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to create family group", err)
	}
	return firstRow[FamilyGroup](raw)
}

func (su *SupabaseRepo) GetGroup(ctx context.Context, id uuid.UUID) (*FamilyGroup, error) {
	raw, _, err := su.supabaseClient.From(FamilyGroupsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get family group", err)
	}
	return firstRow[FamilyGroup](raw)
}

func (su *SupabaseRepo) ListGroupsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*FamilyGroup, error) {
	raw, _, err := su.supabaseClient.From(FamilyGroupsTable).
		Select("*", "", false).
		Eq("owner_id", ownerID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to list family groups", err)
	}
	return decodeRows[FamilyGroup](raw)
}

func (su *SupabaseRepo) AddMembers(ctx context.Context, members []*FamilyMember) ([]*FamilyMember, error) {
	if len(members) == 0 {
		return []*FamilyMember{}, nil
	}
	raw, _, err := su.supabaseClient.From(FamilyMembersTable).
		Insert(members, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to add family members", err)
	}
	return decodeRows[FamilyMember](raw)
}

func (su *SupabaseRepo) ListMembers(ctx context.Context, groupIDs []uuid.UUID) ([]*FamilyMember, error) {
	if len(groupIDs) == 0 {
		return []*FamilyMember{}, nil
	}
	ids := make([]string, 0, len(groupIDs))
	for _, id := range groupIDs {
		ids = append(ids, id.String())
	}

	raw, _, err := su.supabaseClient.From(FamilyMembersTable).
		Select("*", "", false).
		In("group_id", ids).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to list family members", err)
	}
	return decodeRows[FamilyMember](raw)
}

func (su *SupabaseRepo) GetMember(ctx context.Context, groupID, memberID uuid.UUID) (*FamilyMember, error) {
	raw, _, err := su.supabaseClient.From(FamilyMembersTable).
		Select("*", "", false).
		Eq("id", memberID.String()).
		Eq("group_id", groupID.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get family member", err)
	}
	return firstRow[FamilyMember](raw)
}

func (su *SupabaseRepo) UpdateMember(ctx context.Context, groupID, memberID uuid.UUID, fields map[string]interface{}) (*FamilyMember, error) {
	raw, _, err := su.supabaseClient.From(FamilyMembersTable).
		Update(fields, "representation", "").
		Eq("id", memberID.String()).
		Eq("group_id", groupID.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to update family member", err)
	}
	return firstRow[FamilyMember](raw)
}
