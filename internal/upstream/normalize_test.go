package upstream

import (
	"testing"

	"ecocruise-admin/internal/models"
)

func TestDecodeListBareArray(t *testing.T) {
	payload := []byte(`[{"_id":"u1","email":"a@x.com","role":"customer"},{"_id":"u2","email":"b@x.com","role":"customer"}]`)

	var users []models.User
	total, err := DecodeList(payload, &users)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	if len(users) != 2 || users[0].ID != "u1" || users[1].Email != "b@x.com" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestDecodeListEnvelopeWithPagination(t *testing.T) {
	payload := []byte(`{"data":[{"_id":"u1","email":"a@x.com","role":"driver"}],"pagination":{"total":57,"page":1,"pageSize":1}}`)

	var users []models.User
	total, err := DecodeList(payload, &users)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if total != 57 {
		t.Fatalf("total = %d, want pagination total 57", total)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
}

func TestDecodeListEnvelopeWithoutPagination(t *testing.T) {
	payload := []byte(`{"data":[{"_id":"u1","email":"a@x.com","role":"admin"},{"_id":"u2","email":"b@x.com","role":"admin"},{"_id":"u3","email":"c@x.com","role":"admin"}]}`)

	var users []models.User
	total, err := DecodeList(payload, &users)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want item count 3", total)
	}
}

func TestDecodeListEmptyShapes(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"empty array", `[]`},
		{"null data", `{"data":null}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		var users []models.User
		total, err := DecodeList([]byte(tc.payload), &users)
		if err != nil {
			t.Fatalf("%s: DecodeList: %v", tc.name, err)
		}
		if total != 0 {
			t.Fatalf("%s: total = %d, want 0", tc.name, total)
		}
		if len(users) != 0 {
			t.Fatalf("%s: len(users) = %d, want 0", tc.name, len(users))
		}
	}
}

func TestDecodeListRejectsMalformed(t *testing.T) {
	var users []models.User
	if _, err := DecodeList([]byte(`{"data":"not-a-list"}`), &users); err == nil {
		t.Fatal("expected error for non-array data field")
	}
	if _, err := DecodeList([]byte(`[{"broken"`), &users); err == nil {
		t.Fatal("expected error for truncated array")
	}
}

func TestDecodeItemPrefersDataField(t *testing.T) {
	var route models.Route
	payload := []byte(`{"data":{"_id":"r1","startPoint":"Gate A","endPoint":"Library","price":500}}`)
	if err := DecodeItem(payload, &route); err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if route.ID != "r1" || route.Price != 500 {
		t.Fatalf("unexpected route: %+v", route)
	}
}

func TestDecodeItemBareObject(t *testing.T) {
	var route models.Route
	payload := []byte(`{"_id":"r2","startPoint":"Gate B","endPoint":"Hostel","price":300}`)
	if err := DecodeItem(payload, &route); err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if route.ID != "r2" || route.StartPoint != "Gate B" {
		t.Fatalf("unexpected route: %+v", route)
	}
}
