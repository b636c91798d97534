package notifications

import (
	"testing"

	"majdoorsathi/models"
)

func sampleUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{UserID: "u" + string(rune('a'+i)), Role: models.RoleUser}
	}
	return users
}

func TestBuildBroadcastDocsAllAudience(t *testing.T) {
	b := models.Broadcast{Title: "Holiday notice", Body: "Closed on Monday", TargetAudience: models.AudienceAll}
	users := sampleUsers(4)

	docs := BuildBroadcastDocs(b, users)

	// an ALL broadcast reaches each account once per role
	if want := len(users) * 3; len(docs) != want {
		t.Fatalf("expected %d docs, got %d", want, len(docs))
	}
}

func TestBuildBroadcastDocsSingleAudience(t *testing.T) {
	b := models.Broadcast{Title: "t", Body: "b", TargetAudience: models.AudienceLabour}
	users := sampleUsers(3)

	docs := BuildBroadcastDocs(b, users)
	if len(docs) != len(users) {
		t.Fatalf("expected %d docs, got %d", len(users), len(docs))
	}

	for _, d := range docs {
		n, ok := d.(models.Notification)
		if !ok {
			t.Fatalf("unexpected doc type %T", d)
		}
		if n.Role != models.RoleLabour {
			t.Fatalf("expected role %q, got %q", models.RoleLabour, n.Role)
		}
		if n.Kind != models.NotifBroadcast {
			t.Fatalf("expected kind %q, got %q", models.NotifBroadcast, n.Kind)
		}
	}
}

func TestBuildBroadcastDocsEmptyUserList(t *testing.T) {
	b := models.Broadcast{Title: "t", Body: "b", TargetAudience: models.AudienceAll}
	if docs := BuildBroadcastDocs(b, nil); len(docs) != 0 {
		t.Fatalf("expected no docs, got %d", len(docs))
	}
}
