package services

import (
	"errors"
	"testing"

	"github.com/bifidokk/shopping-list/internal/models"
)

func TestCreateSetsOwnerAndCreator(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, _, _ := newServices(db)
	user := createTestUser(t, db, 100, "alice")

	description := "weekly run"
	list, err := lists.Create(user, "Groceries", &description)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if list.OwnerID != user.ID || list.UserID != user.ID {
		t.Errorf("owner = %d, creator = %d, want both %d", list.OwnerID, list.UserID, user.ID)
	}
	if list.Description == nil || *list.Description != description {
		t.Errorf("description not persisted: %v", list.Description)
	}
	if list.SharedWith != 0 {
		t.Errorf("shared_with = %d, want 0 on creation", list.SharedWith)
	}
}

func TestFindForUserWithoutAccess(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, _, _ := newServices(db)
	owner := createTestUser(t, db, 100, "alice")
	stranger := createTestUser(t, db, 200, "bob")

	list, _ := lists.Create(owner, "Groceries", nil)

	// A stranger cannot distinguish "exists but private" from "missing".
	if _, err := lists.FindForUser(list.ID, stranger); !errors.Is(err, ErrListNotFound) {
		t.Errorf("err = %v, want ErrListNotFound", err)
	}
	if _, err := lists.FindForUser(99999, stranger); !errors.Is(err, ErrListNotFound) {
		t.Errorf("err for missing list = %v, want ErrListNotFound", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, _, _ := newServices(db)
	user := createTestUser(t, db, 100, "alice")

	description := "old"
	list, _ := lists.Create(user, "Groceries", &description)

	newName := "Weekend Groceries"
	updated, err := lists.Update(list, &newName, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != newName {
		t.Errorf("name = %q, want %q", updated.Name, newName)
	}
	if updated.Description == nil || *updated.Description != "old" {
		t.Errorf("description changed on nil input: %v", updated.Description)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, items, shares := newServices(db)
	owner := createTestUser(t, db, 100, "alice")
	createTestUser(t, db, 200, "bob")

	list, _ := lists.Create(owner, "Groceries", nil)
	if _, err := items.AddItemIfNotExists("milk", list); err != nil {
		t.Fatalf("AddItemIfNotExists: %v", err)
	}
	if _, err := shares.ShareList(list, "bob", owner); err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	if err := lists.Delete(list); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var itemCount, shareCount, defaultCount int64
	db.Model(&models.Item{}).Where("shopping_list_id = ?", list.ID).Count(&itemCount)
	db.Model(&models.ListShare{}).Where("shopping_list_id = ?", list.ID).Count(&shareCount)
	db.Model(&models.UserDefaultList{}).Where("shopping_list_id = ?", list.ID).Count(&defaultCount)

	if itemCount != 0 || shareCount != 0 || defaultCount != 0 {
		t.Errorf("cascade left rows behind: items=%d shares=%d defaults=%d", itemCount, shareCount, defaultCount)
	}
}

func TestFindUserListsDefaultFirst(t *testing.T) {
	db := setupTestDB(t)
	_, _, lists, _, _ := newServices(db)
	user := createTestUser(t, db, 100, "alice")

	listA, _ := lists.Create(user, "A", nil)
	listB, _ := lists.Create(user, "B", nil)
	listC, _ := lists.Create(user, "C", nil)

	if err := lists.SetAsDefault(listB, user); err != nil {
		t.Fatalf("SetAsDefault: %v", err)
	}

	got, err := lists.FindUserLists(user)
	if err != nil {
		t.Fatalf("FindUserLists: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(lists) = %d, want 3", len(got))
	}
	if got[0].ID != listB.ID {
		t.Errorf("first list = %d, want default %d", got[0].ID, listB.ID)
	}

	rest := map[uint]bool{got[1].ID: true, got[2].ID: true}
	if !rest[listA.ID] || !rest[listC.ID] {
		t.Errorf("remaining lists = %v, want %d and %d", rest, listA.ID, listC.ID)
	}
}

func TestCollaboratorSeesSharedList(t *testing.T) {
	db := setupTestDB(t)
	access, _, lists, _, shares := newServices(db)
	owner := createTestUser(t, db, 100, "alice")
	collaborator := createTestUser(t, db, 200, "bob")

	list, _ := lists.Create(owner, "Groceries", nil)
	if _, err := shares.ShareList(list, "bob", owner); err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	got, err := lists.FindUserLists(collaborator)
	if err != nil {
		t.Fatalf("FindUserLists: %v", err)
	}
	if len(got) != 1 || got[0].ID != list.ID {
		t.Fatalf("collaborator lists = %+v, want shared list %d", got, list.ID)
	}
	if got[0].SharedWith != 1 {
		t.Errorf("shared_with = %d, want 1", got[0].SharedWith)
	}
	if access.IsOwner(list.ID, collaborator.ID) {
		t.Error("collaborator reported as owner")
	}
}
