package services

import (
	"context"
	"errors"
	"testing"

	"gridsense-backend/internal/models"
)

func seedSession(f *fakeStore, cwid, number int, desc string) {
	f.sessions[sessionKey{cwid, number}] = &models.Session{
		CWID: cwid, SessionNumber: number, Description: desc, Length: 1, Width: 1,
	}
}

func TestShareSelfShareFailsBeforeStorage(t *testing.T) {
	tests := []struct {
		name          string
		sessionExists bool
	}{
		{"session exists", true},
		{"session does not exist", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			seedUser(store, 100, "Ada")
			if tc.sessionExists {
				seedSession(store, 100, 1, "run")
			}
			svc := NewSharingService(shareStore{store})

			_, err := svc.Share(context.Background(), models.ShareSessionRequest{
				SessionCWID: 100, SessionNumber: 1, ShareToCWID: 100,
			})
			var ssErr *SelfShareError
			if !errors.As(err, &ssErr) {
				t.Fatalf("Expected SelfShareError, got %v", err)
			}
			if store.createShareCalls != 0 {
				t.Errorf("Expected no storage call for a self-share, got %d", store.createShareCalls)
			}
		})
	}
}

func TestShareDuplicatePair(t *testing.T) {
	store := newFakeStore()
	seedUser(store, 100, "Ada")
	seedUser(store, 200, "Grace")
	seedSession(store, 100, 1, "run")
	svc := NewSharingService(shareStore{store})
	ctx := context.Background()

	req := models.ShareSessionRequest{SessionCWID: 100, SessionNumber: 1, ShareToCWID: 200}

	if _, err := svc.Share(ctx, req); err != nil {
		t.Fatalf("First share failed: %v", err)
	}

	_, err := svc.Share(ctx, req)
	var dErr *DuplicateShareError
	if !errors.As(err, &dErr) {
		t.Fatalf("Expected DuplicateShareError, got %v", err)
	}
	if len(store.shares) != 1 {
		t.Errorf("Expected exactly one share row, got %d", len(store.shares))
	}
}

func TestShareMissingSessionOrRecipient(t *testing.T) {
	tests := []struct {
		name string
		seed func(*fakeStore)
		req  models.ShareSessionRequest
	}{
		{
			"missing session",
			func(f *fakeStore) { seedUser(f, 100, "Ada"); seedUser(f, 200, "Grace") },
			models.ShareSessionRequest{SessionCWID: 100, SessionNumber: 7, ShareToCWID: 200},
		},
		{
			"missing recipient",
			func(f *fakeStore) { seedUser(f, 100, "Ada"); seedSession(f, 100, 1, "run") },
			models.ShareSessionRequest{SessionCWID: 100, SessionNumber: 1, ShareToCWID: 999},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			tc.seed(store)
			svc := NewSharingService(shareStore{store})

			_, err := svc.Share(context.Background(), tc.req)
			var cErr *ConstraintError
			if !errors.As(err, &cErr) {
				t.Errorf("Expected ConstraintError, got %v", err)
			}
			if len(store.shares) != 0 {
				t.Errorf("Expected no share rows, got %d", len(store.shares))
			}
		})
	}
}

func TestShareThenListForRecipient(t *testing.T) {
	store := newFakeStore()
	seedUser(store, 100, "Ada")
	seedUser(store, 200, "Grace")
	seedSession(store, 100, 1, "bench run")
	svc := NewSharingService(shareStore{store})
	ctx := context.Background()

	if _, err := svc.Share(ctx, models.ShareSessionRequest{SessionCWID: 100, SessionNumber: 1, ShareToCWID: 200}); err != nil {
		t.Fatalf("Share failed: %v", err)
	}

	shared, err := svc.ListSharedWith(ctx, 200)
	if err != nil {
		t.Fatalf("ListSharedWith failed: %v", err)
	}
	if len(shared) != 1 {
		t.Fatalf("Expected 1 shared session, got %d", len(shared))
	}
	if shared[0].CWID != 100 || shared[0].SessionNumber != 1 || shared[0].Description != "bench run" {
		t.Errorf("Unexpected shared session: %+v", shared[0])
	}

	// Sharing is directional: the owner's own shared-with list stays empty.
	mine, err := svc.ListSharedWith(ctx, 100)
	if err != nil {
		t.Fatalf("ListSharedWith failed: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("Expected no sessions shared to the owner, got %d", len(mine))
	}
}

func TestListSharedWithNobody(t *testing.T) {
	store := newFakeStore()
	svc := NewSharingService(shareStore{store})

	shared, err := svc.ListSharedWith(context.Background(), 300)
	if err != nil {
		t.Fatalf("ListSharedWith failed: %v", err)
	}
	if len(shared) != 0 {
		t.Errorf("Expected empty result, got %d", len(shared))
	}
}
