package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"remindbot/internal/domain/entity"
	appErrors "remindbot/internal/pkg/errors"
)

// fakeReminderRepo is an in-memory ReminderRepository for tests.
type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders map[uint]*entity.Reminder
	nextID    uint

	failFindAll error
	failCreate  error
	failDelete  error
	failUpdate  error
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[uint]*entity.Reminder)}
}

func (f *fakeReminderRepo) FindByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", appErrors.ErrReminderNotFound, id)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReminderRepo) FindByChatID(ctx context.Context, chatID int64) ([]*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.ChatID == chatID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RemindTime.Before(out[j].RemindTime) })
	return out, nil
}

func (f *fakeReminderRepo) FindAll(ctx context.Context) ([]*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFindAll != nil {
		return nil, f.failFindAll
	}
	var out []*entity.Reminder
	for _, r := range f.reminders {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	f.nextID++
	reminder.ID = f.nextID
	cp := *reminder
	f.reminders[reminder.ID] = &cp
	return reminder.ID, nil
}

func (f *fakeReminderRepo) Update(ctx context.Context, reminder *entity.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	cp := *reminder
	f.reminders[reminder.ID] = &cp
	return nil
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reminders)
}

func (f *fakeReminderRepo) get(id uint) *entity.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reminders[id]; ok {
		cp := *r
		return &cp
	}
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) FindByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[chatID]
	if !ok {
		return nil, fmt.Errorf("%w: chat %d", appErrors.ErrUserNotFound, chatID)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ChatID] = &cp
	return nil
}

func (f *fakeUserRepo) has(chatID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[chatID]
	return ok
}

// fakeNotifier records sends and can be told to fail per chat.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
}

type sentMessage struct {
	chatID int64
	text   string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[int64]error)}
}

func (f *fakeNotifier) Send(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[chatID]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeNotifier) sends() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

var errStoreDown = errors.New("store connection refused")
