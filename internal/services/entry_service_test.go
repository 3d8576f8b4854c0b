package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/embed"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/parse"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/memstore"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/respond"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

func newTestService(store *memstore.Store) EntryService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewEntryService(EntryServiceDeps{
		Entries:  store,
		Profiles: store,
		Store:    store,
		Embedder: embed.NewHashEmbedder(),
		Parser:   parse.NewRuleParser(),
		Selector: respond.NewSelector(rand.New(rand.NewSource(1))),
		Logger:   log,
	})
}

func TestProcessFirstEntry(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	res, err := svc.Process(ctx, "u1", "I'm stressed about my job and deadlines.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.CarryIn {
		t.Fatal("first entry must never carry in")
	}
	if res.EntryID == "" {
		t.Fatal("missing entry id")
	}
	n := utf8.RuneCountInString(res.ResponseText)
	if n == 0 || n > respond.MaxLen {
		t.Fatalf("response %q is %d runes", res.ResponseText, n)
	}
	if strings.HasPrefix(res.ResponseText, respond.ReturningMarker) {
		t.Fatalf("first entry got a returning-user reply: %q", res.ResponseText)
	}
}

func TestProcessWorkStressCarryIn(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Process(ctx, "u1", "I'm stressed about my job and deadlines."); err != nil {
		t.Fatalf("Process: %v", err)
	}

	res, err := svc.Process(ctx, "u1", "Work is overwhelming me again today.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.CarryIn {
		t.Fatal("recurring work theme must carry in")
	}
	if !strings.HasPrefix(res.ResponseText, respond.ReturningMarker) {
		t.Fatalf("second entry should use the returning table: %q", res.ResponseText)
	}
}

func TestProcessDisjointTopicsNoCarryIn(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Process(ctx, "u1", "My mom called and we talked for an hour."); err != nil {
		t.Fatalf("Process: %v", err)
	}

	res, err := svc.Process(ctx, "u1", "Rent is due and the budget looks grim.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.CarryIn {
		t.Fatal("disjoint topics with dissimilar text must not carry in")
	}
}

func TestProcessUniqueIDs(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	a, err := svc.Process(ctx, "u1", "same text")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	b, err := svc.Process(ctx, "u1", "same text")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if a.EntryID == b.EntryID {
		t.Fatalf("duplicate entry id %q", a.EntryID)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)

	for _, text := range []string{"", "    ", "\n\t"} {
		res, err := svc.Process(context.Background(), "u1", text)
		if err != nil {
			t.Fatalf("Process(%q): %v", text, err)
		}
		if res.EntryID == "" || res.ResponseText == "" {
			t.Fatalf("empty input must still produce a full result: %+v", res)
		}
		if utf8.RuneCountInString(res.ResponseText) > respond.MaxLen {
			t.Fatalf("response over bound: %q", res.ResponseText)
		}
	}
}

func TestProcessMonotonicCounts(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := svc.Process(ctx, "u1", "Another long day at the office."); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	p, err := store.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if p.ThemeCount["work-life balance"] != 4 {
		t.Fatalf("theme count=%d, want 4", p.ThemeCount["work-life balance"])
	}
	if p.LastTheme != "work-life balance" {
		t.Fatalf("last theme=%q", p.LastTheme)
	}
}

func TestProcessResetIdempotence(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	profiles := NewProfileService(store, store, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Process(ctx, "u1", "Deadlines are piling up at work."); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	if err := profiles.Reset(ctx, "u1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	res, err := svc.Process(ctx, "u1", "Deadlines are piling up at work.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.CarryIn {
		t.Fatal("first entry after reset must not carry in")
	}
	if strings.HasPrefix(res.ResponseText, respond.ReturningMarker) {
		t.Fatalf("first entry after reset should use the first-entry table: %q", res.ResponseText)
	}

	p, err := store.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if p.ThemeCount["work-life balance"] != 1 {
		t.Fatalf("theme count after reset=%d, want 1", p.ThemeCount["work-life balance"])
	}
}

func TestProcessExperiencedUserDiffers(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.Process(ctx, "u1", "I'm stressed about my job and deadlines.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var last *ProcessResult
	for i := 0; i < 99; i++ {
		last, err = svc.Process(ctx, "u1", "I'm stressed about my job and deadlines.")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	if strings.HasPrefix(first.ResponseText, respond.ReturningMarker) {
		t.Fatalf("first reply in returning category: %q", first.ResponseText)
	}
	if !strings.HasPrefix(last.ResponseText, respond.ReturningMarker) {
		t.Fatalf("100th reply not in returning category: %q", last.ResponseText)
	}
}

type failingStore struct {
	*memstore.Store
}

func (failingStore) SaveEntryAndProfile(context.Context, *models.Entry, *models.UserProfile) error {
	return errors.New("disk full")
}

func TestProcessAtomicityOnStoreFailure(t *testing.T) {
	store := memstore.New()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	svc := NewEntryService(EntryServiceDeps{
		Entries:  store,
		Profiles: store,
		Store:    failingStore{store},
		Embedder: embed.NewHashEmbedder(),
		Parser:   parse.NewRuleParser(),
		Logger:   log,
	})

	_, err := svc.Process(context.Background(), "u1", "this write will fail")
	if err == nil {
		t.Fatal("expected a failure")
	}

	count, _ := store.CountByUser(context.Background(), "u1")
	if count != 0 {
		t.Fatalf("entry leaked past a failed save: count=%d", count)
	}
	if _, perr := store.GetByUserID(context.Background(), "u1"); !errors.Is(perr, utils.ErrNotFound) {
		t.Fatalf("profile leaked past a failed save: %v", perr)
	}
}

func TestProcessRejectsMissingUser(t *testing.T) {
	svc := newTestService(memstore.New())
	if _, err := svc.Process(context.Background(), "", "hello"); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("err=%v, want INVALID_ARGUMENT", err)
	}
}

func TestRecentWindowBound(t *testing.T) {
	store := memstore.New()
	svc := newTestService(store)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if _, err := svc.Process(ctx, "u1", "Another evening, another page."); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	rows, err := svc.Recent(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("window=%d, want 5", len(rows))
	}

	count, err := svc.Count(ctx, "u1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 8 {
		t.Fatalf("count=%d, want 8 (full log keeps growing)", count)
	}
}
