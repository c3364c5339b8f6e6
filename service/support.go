package service

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knockknock1010/Back/model"
)

// ContactStore is an in-memory store for contact inquiries
type ContactStore struct {
	mu        sync.RWMutex
	inquiries map[string]*model.ContactInquiry
}

func NewContactStore() *ContactStore {
	return &ContactStore{
		inquiries: make(map[string]*model.ContactInquiry),
	}
}

// Submit records a new inquiry in pending status
func (s *ContactStore) Submit(username, category, title, content string) *model.ContactInquiry {
	inquiry := &model.ContactInquiry{
		ID:        uuid.New().String(),
		Username:  username,
		Category:  category,
		Title:     title,
		Content:   content,
		Status:    model.InquiryPending,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inquiries[inquiry.ID] = inquiry
	return inquiry
}

// List returns inquiries newest first, optionally filtered by status
func (s *ContactStore) List(status string) []*model.ContactInquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.ContactInquiry
	for _, inquiry := range s.inquiries {
		if status != "" && inquiry.Status != status {
			continue
		}
		result = append(result, inquiry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// UpdateStatus moves an inquiry to a new status. Returns false when the
// inquiry does not exist.
func (s *ContactStore) UpdateStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry, ok := s.inquiries[id]
	if !ok {
		return false
	}
	inquiry.Status = status
	return true
}

// NotificationStore keeps per-user notifications and preferences
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*model.Notification
	settings      map[string]model.NotificationSettings
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[string]*model.Notification),
		settings:      make(map[string]model.NotificationSettings),
	}
}

// Notify creates a notification for a user
func (s *NotificationStore) Notify(username, title, body string) *model.Notification {
	notification := &model.Notification{
		ID:        uuid.New().String(),
		Username:  username,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.ID] = notification
	return notification
}

// ListByUser returns a user's notifications newest first, capped at
// limit, optionally restricted to unread ones.
func (s *NotificationStore) ListByUser(username string, onlyUnread bool, limit int) []*model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Notification
	for _, n := range s.notifications {
		if n.Username != username {
			continue
		}
		if onlyUnread && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// MarkRead marks one of the user's notifications as read. Returns false
// when the notification does not exist or belongs to someone else.
func (s *NotificationStore) MarkRead(username, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok || notification.Username != username {
		return false
	}
	notification.IsRead = true
	return true
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationStore) MarkAllRead(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.Username == username {
			n.IsRead = true
		}
	}
}

// Settings returns the user's notification preferences, creating the
// defaults on first access.
func (s *NotificationStore) Settings(username string) model.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[username]
	if !ok {
		settings = model.DefaultNotificationSettings()
		s.settings[username] = settings
	}
	return settings
}

// UpdateSettings replaces the user's notification preferences
func (s *NotificationStore) UpdateSettings(username string, settings model.NotificationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[username] = settings
}
