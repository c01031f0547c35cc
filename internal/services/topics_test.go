package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestRolesForTopic(t *testing.T) {
	t.Setenv("TOPIC_ROLES_PATH", "")
	ts, err := NewTopicService(testLogger(t))
	if err != nil {
		t.Fatalf("NewTopicService: %v", err)
	}

	cases := []struct {
		topic    string
		aiRole   string
		userRole string
	}{
		{"hospital", "doctor", "patient"},
		{"병원", "doctor", "patient"},
		{"Restaurant", "waiter", "customer"},
		{"레스토랑", "waiter", "customer"},
		{"airport", "staff", "passenger"},
		{"호텔", "clerk", "guest"},
		{"병원 방문", "doctor", "patient"},
		{"hotel reservation", "clerk", "guest"},
		{"space travel", "tutor", "student"},
		{"", "tutor", "student"},
	}
	for _, tc := range cases {
		pair := ts.RolesForTopic(tc.topic)
		if pair.AIRole != tc.aiRole || pair.UserRole != tc.userRole {
			t.Errorf("RolesForTopic(%q) = %s/%s, want %s/%s", tc.topic, pair.AIRole, pair.UserRole, tc.aiRole, tc.userRole)
		}
	}
}

func TestTopicRolesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	yamlBody := "bank:\n  ai_role: teller\n  user_role: customer\nhospital:\n  ai_role: nurse\n  user_role: patient\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	t.Setenv("TOPIC_ROLES_PATH", path)

	ts, err := NewTopicService(testLogger(t))
	if err != nil {
		t.Fatalf("NewTopicService: %v", err)
	}

	if pair := ts.RolesForTopic("bank"); pair.AIRole != "teller" {
		t.Errorf("override topic not loaded, got %+v", pair)
	}
	if pair := ts.RolesForTopic("hospital"); pair.AIRole != "nurse" {
		t.Errorf("builtin topic not overridden, got %+v", pair)
	}
}

func TestTopicRolesOverrideRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	if err := os.WriteFile(path, []byte("bank:\n  ai_role: teller\n"), 0o644); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	t.Setenv("TOPIC_ROLES_PATH", path)

	if _, err := NewTopicService(testLogger(t)); err == nil {
		t.Fatal("expected error for incomplete override")
	}
}
