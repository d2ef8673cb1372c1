package contributionstore_test

import (
	"testing"

	contributionstore "github.com/dalemusser/gracehub/internal/app/store/contributions"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"github.com/dalemusser/gracehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_List_DateDescending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	docs := []interface{}{
		models.Contribution{ID: primitive.NewObjectID(), MpesaRef: "A1", UserID: &uid, Amount: 100, Date: "2025-01-10"},
		models.Contribution{ID: primitive.NewObjectID(), MpesaRef: "B2", Amount: 50, Date: "2025-03-02"},
		models.Contribution{ID: primitive.NewObjectID(), MpesaRef: "C3", Amount: 75, Date: "2025-02-14"},
	}
	if _, err := db.Collection("contributions").InsertMany(ctx, docs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list, err := contributionstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"B2", "C3", "A1"}
	if len(list) != len(want) {
		t.Fatalf("got %d contributions, want %d", len(list), len(want))
	}
	for i, ref := range want {
		if list[i].MpesaRef != ref {
			t.Errorf("list[%d] = %s, want %s", i, list[i].MpesaRef, ref)
		}
	}
	if list[2].UserID == nil || *list[2].UserID != uid {
		t.Error("user id not round-tripped")
	}
}

func TestStore_List_EmptyIsNonNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	list, err := contributionstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List = %#v, want empty slice", list)
	}
}
