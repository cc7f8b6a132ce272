package repositoryImp

import (
	"testing"

	"minascan/entities"
	"minascan/pkg/testutil"
)

func TestFieldPreloadOnlyForExport(t *testing.T) {
	db := testutil.NewDB(t)
	r := New(db)
	u := testutil.SeedUser(t, db, "ana@farm.pe", entities.RoleEmployee)
	f := testutil.SeedField(t, db, u.ID, "Lote 1")
	if err := r.Create(&entities.Detection{UserID: u.ID, FieldID: f.ID, Result: "trips"}, nil); err != nil {
		t.Fatal(err)
	}

	list, err := r.List(u.ID, nil)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected 1 detection, got %d (%v)", len(list), err)
	}
	if list[0].Field != nil {
		t.Errorf("Expected List to leave Field unloaded, got %+v", list[0].Field)
	}

	withFields, err := r.ListWithFields(u.ID)
	if err != nil || len(withFields) != 1 {
		t.Fatalf("Expected 1 detection, got %d (%v)", len(withFields), err)
	}
	if withFields[0].Field == nil || withFields[0].Field.Name != "Lote 1" || withFields[0].Field.Location != "-12.05,-77.04" {
		t.Errorf("Expected decrypted field preloaded, got %+v", withFields[0].Field)
	}
}
