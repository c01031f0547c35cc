package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// TopicService maps a conversation topic to the roles the AI and the learner
// play. Built-in topics cover the roleplay scenes the UI offers; a YAML file
// at TOPIC_ROLES_PATH can add or override entries.
type TopicService interface {
	RolesForTopic(topic string) types.RolePair
	KnownTopics() []string
}

type topicService struct {
	log   *logger.Logger
	roles map[string]types.RolePair
	order []string
	// Every key in registration order, for the containment scan on labels
	// like "병원 방문" that wrap a known topic.
	matchKeys []string
}

var builtinTopicRoles = []struct {
	keys  []string
	roles types.RolePair
}{
	{[]string{"hospital", "병원"}, types.RolePair{AIRole: "doctor", UserRole: "patient"}},
	{[]string{"restaurant", "레스토랑"}, types.RolePair{AIRole: "waiter", UserRole: "customer"}},
	{[]string{"airport", "공항"}, types.RolePair{AIRole: "staff", UserRole: "passenger"}},
	{[]string{"hotel", "호텔"}, types.RolePair{AIRole: "clerk", UserRole: "guest"}},
}

var defaultTopicRoles = types.RolePair{AIRole: "tutor", UserRole: "student"}

func NewTopicService(log *logger.Logger) (TopicService, error) {
	serviceLog := log.With("service", "TopicService")

	ts := &topicService{log: serviceLog, roles: map[string]types.RolePair{}}
	for _, entry := range builtinTopicRoles {
		ts.order = append(ts.order, entry.keys[0])
		for _, key := range entry.keys {
			ts.roles[key] = entry.roles
			ts.matchKeys = append(ts.matchKeys, key)
		}
	}

	if path := strings.TrimSpace(os.Getenv("TOPIC_ROLES_PATH")); path != "" {
		if err := ts.loadOverrides(path); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (ts *topicService) loadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read topic roles file: %w", err)
	}
	var overrides map[string]struct {
		AIRole   string `yaml:"ai_role"`
		UserRole string `yaml:"user_role"`
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse topic roles file: %w", err)
	}
	for topic, pair := range overrides {
		key := normalizeTopic(topic)
		if pair.AIRole == "" || pair.UserRole == "" {
			return fmt.Errorf("topic %q missing ai_role or user_role", topic)
		}
		if _, exists := ts.roles[key]; !exists {
			ts.order = append(ts.order, key)
			ts.matchKeys = append(ts.matchKeys, key)
		}
		ts.roles[key] = types.RolePair{AIRole: pair.AIRole, UserRole: pair.UserRole}
	}
	ts.log.Info("Loaded topic role overrides", "path", path, "count", len(overrides))
	return nil
}

func (ts *topicService) RolesForTopic(topic string) types.RolePair {
	normalized := normalizeTopic(topic)
	if pair, ok := ts.roles[normalized]; ok {
		return pair
	}
	for _, key := range ts.matchKeys {
		if strings.Contains(normalized, key) {
			return ts.roles[key]
		}
	}
	return defaultTopicRoles
}

func (ts *topicService) KnownTopics() []string {
	out := make([]string, len(ts.order))
	copy(out, ts.order)
	return out
}

func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
