package repository

import (
	"context"
	"testing"

	"github.com/velourstudio/salon-scheduler/internal/models"
)

func TestClientRepo_FindByPhone(t *testing.T) {
	db := newTestDB(t, &models.Client{})
	repo := NewClientGormRepository(db)
	ctx := context.Background()

	seed := &models.Client{FirstName: "Dana", Phone: "7145550100"}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByPhone(ctx, "7145550100")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if found == nil || found.ID != seed.ID {
		t.Fatalf("expected seeded client, got %+v", found)
	}

	missing, err := repo.FindByPhone(ctx, "0000000000")
	if err != nil {
		t.Fatalf("FindByPhone(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown phone, got %+v", missing)
	}
}

func TestClientRepo_FindByPhoneSuffix(t *testing.T) {
	db := newTestDB(t, &models.Client{})
	repo := NewClientGormRepository(db)
	ctx := context.Background()

	// Stored with country code; matched by trailing 10 digits.
	if err := repo.Create(ctx, &models.Client{Phone: "17145550100"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByPhoneSuffix(ctx, "7145550100")
	if err != nil {
		t.Fatalf("FindByPhoneSuffix: %v", err)
	}
	if found == nil {
		t.Fatal("expected suffix match")
	}

	none, err := repo.FindByPhoneSuffix(ctx, "9995550100")
	if err != nil {
		t.Fatalf("FindByPhoneSuffix(none): %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil, got %+v", none)
	}
}

func TestClientRepo_UpdateContactLeavesServerFieldsAlone(t *testing.T) {
	db := newTestDB(t, &models.Client{})
	repo := NewClientGormRepository(db)
	ctx := context.Background()

	seed := &models.Client{Phone: "7145550100", FirstName: "Old", PhoneVerified: true}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("Create: %v", err)
	}

	seed.FirstName = "New"
	seed.PhoneVerified = false // must NOT be persisted by UpdateContact
	if err := repo.UpdateContact(ctx, seed); err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}

	stored, err := repo.FindByPhone(ctx, "7145550100")
	if err != nil {
		t.Fatalf("FindByPhone: %v", err)
	}
	if stored.FirstName != "New" {
		t.Errorf("FirstName = %q, want New", stored.FirstName)
	}
	if !stored.PhoneVerified {
		t.Error("PhoneVerified must stay true; UpdateContact may not clear it")
	}
}

func TestClientRepo_SetPaymentProfileIfEmpty(t *testing.T) {
	db := newTestDB(t, &models.Client{})
	repo := NewClientGormRepository(db)
	ctx := context.Background()

	seed := &models.Client{Phone: "7145550100"}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("Create: %v", err)
	}

	won, err := repo.SetPaymentProfileIfEmpty(ctx, seed.ID, "prof_first")
	if err != nil {
		t.Fatalf("SetPaymentProfileIfEmpty: %v", err)
	}
	if !won {
		t.Fatal("first writer should win")
	}

	// Second writer loses; the stored value is untouched.
	won, err = repo.SetPaymentProfileIfEmpty(ctx, seed.ID, "prof_second")
	if err != nil {
		t.Fatalf("SetPaymentProfileIfEmpty(second): %v", err)
	}
	if won {
		t.Fatal("second writer must lose")
	}

	stored, _ := repo.FindByPhone(ctx, "7145550100")
	if stored.PaymentProfileID != "prof_first" {
		t.Errorf("PaymentProfileID = %q, want prof_first", stored.PaymentProfileID)
	}
}

func TestClientRepo_MarkPhoneVerified(t *testing.T) {
	db := newTestDB(t, &models.Client{})
	repo := NewClientGormRepository(db)
	ctx := context.Background()

	seed := &models.Client{Phone: "7145550100"}
	if err := repo.Create(ctx, seed); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.MarkPhoneVerified(ctx, "7145550100"); err != nil {
		t.Fatalf("MarkPhoneVerified: %v", err)
	}

	stored, _ := repo.FindByPhone(ctx, "7145550100")
	if !stored.PhoneVerified {
		t.Error("expected PhoneVerified true")
	}

	// No matching client is not an error.
	if err := repo.MarkPhoneVerified(ctx, "0000000000"); err != nil {
		t.Errorf("MarkPhoneVerified(no match): %v", err)
	}
}
