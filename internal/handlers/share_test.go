package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/bifidokk/shopping-list/internal/models"
)

func TestCreateShareOwnerOnly(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, 100, "alice")
	collaborator := env.createUser(t, 200, "bob")
	env.createUser(t, 300, "carol")

	list := createListVia(t, env, owner, "Groceries")
	listRow, _ := env.access.FindByID(list.ID)
	if _, err := env.shares.ShareList(listRow, "bob", owner); err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	w := env.do(t, collaborator, http.MethodPost, fmt.Sprintf("/api/v1/lists/%d/shares", list.ID), `{"telegram_username":"carol"}`)
	statusWant(t, w, http.StatusForbidden)
}

func TestCreateShareConflicts(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, 100, "alice")
	env.createUser(t, 200, "bobby")

	list := createListVia(t, env, owner, "Groceries")
	path := fmt.Sprintf("/api/v1/lists/%d/shares", list.ID)

	w := env.do(t, owner, http.MethodPost, path, `{"telegram_username":"@nobody"}`)
	statusWant(t, w, http.StatusNotFound)

	w = env.do(t, owner, http.MethodPost, path, `{"telegram_username":"alice"}`)
	statusWant(t, w, http.StatusConflict)

	w = env.do(t, owner, http.MethodPost, path, `{"telegram_username":"@bobby"}`)
	statusWant(t, w, http.StatusCreated)

	w = env.do(t, owner, http.MethodPost, path, `{"telegram_username":"bobby"}`)
	statusWant(t, w, http.StatusConflict)
}

func TestDeleteShareSelfLeaveAndForbidden(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, 100, "alice")
	bob := env.createUser(t, 200, "bob")
	carol := env.createUser(t, 300, "carol")

	list := createListVia(t, env, owner, "Groceries")
	listRow, _ := env.access.FindByID(list.ID)
	if _, err := env.shares.ShareList(listRow, "bob", owner); err != nil {
		t.Fatalf("ShareList bob: %v", err)
	}
	if _, err := env.shares.ShareList(listRow, "carol", owner); err != nil {
		t.Fatalf("ShareList carol: %v", err)
	}

	// A collaborator cannot evict another collaborator.
	w := env.do(t, bob, http.MethodDelete, fmt.Sprintf("/api/v1/lists/%d/shares/%d", list.ID, carol.ID), "")
	statusWant(t, w, http.StatusForbidden)

	// But may leave the list themself.
	w = env.do(t, bob, http.MethodDelete, fmt.Sprintf("/api/v1/lists/%d/shares/%d", list.ID, bob.ID), "")
	statusWant(t, w, http.StatusNoContent)

	// The owner may remove anyone.
	w = env.do(t, owner, http.MethodDelete, fmt.Sprintf("/api/v1/lists/%d/shares/%d", list.ID, carol.ID), "")
	statusWant(t, w, http.StatusNoContent)

	var remaining int64
	env.db.Model(&models.ListShare{}).Where("shopping_list_id = ?", list.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("share rows = %d, want 0", remaining)
	}
}

func TestListSharesVisibleToCollaborator(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, 100, "alice")
	bob := env.createUser(t, 200, "bob")
	stranger := env.createUser(t, 300, "carol")

	list := createListVia(t, env, owner, "Groceries")
	listRow, _ := env.access.FindByID(list.ID)
	if _, err := env.shares.ShareList(listRow, "bob", owner); err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	w := env.do(t, bob, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d/shares", list.ID), "")
	statusWant(t, w, http.StatusOK)

	var resps []ShareResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resps); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resps) != 1 || resps[0].SharedWithUserID != bob.ID {
		t.Errorf("shares = %+v, want one row for bob", resps)
	}

	// Strangers see the same 404 as a missing list.
	w = env.do(t, stranger, http.MethodGet, fmt.Sprintf("/api/v1/lists/%d/shares", list.ID), "")
	statusWant(t, w, http.StatusNotFound)
}
