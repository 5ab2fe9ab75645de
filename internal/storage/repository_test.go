package storage

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
)

type user struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type recordedOp struct {
	entity, method string
	err            error
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (f *fakeRecorder) StorageOp(entity, method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, recordedOp{entity, method, err})
}

func newManager(t *testing.T) *stable.MemoryManager {
	t.Helper()
	e, err := stable.Open(stable.InMemoryConfig(), slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { e.Close() })
	return stable.NewMemoryManager(e)
}

func newUserMap(t *testing.T, mm *stable.MemoryManager, id stable.MemoryID) *stable.Map[uint64, user] {
	t.Helper()
	r, err := mm.Get(id, "users")
	if err != nil {
		t.Fatal(err)
	}
	return stable.NewMap[uint64, user](r, stable.Uint64Key{}, stable.JSONCodec[user]{})
}

func newUsers(t *testing.T, opts ...Option) *AutoRepository[user] {
	t.Helper()
	mm := newManager(t)
	wr, err := mm.Get(1, "users_watermark")
	if err != nil {
		t.Fatal(err)
	}
	return NewAutoRepository("users", newUserMap(t, mm, 0), stable.NewCell[uint64](wr, stable.JSONCodec[uint64]{}), opts...)
}

func requireStorageError(t *testing.T, err error, typ domain.ErrorType, method string) {
	t.Helper()
	ae, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.Type != typ {
		t.Errorf("Type = %s, want %s", ae.Type, typ)
	}
	if ae.MethodName != method {
		t.Errorf("MethodName = %q, want %q", ae.MethodName, method)
	}
	if len(ae.Info) != 2 || ae.Info[0] != "users" || ae.Info[1] != "storage" {
		t.Errorf("Info = %v", ae.Info)
	}
	if ae.Source != domain.Source {
		t.Errorf("Source = %q", ae.Source)
	}
}

var (
	_ Queryable[uint64, user]       = (*Repository[uint64, user])(nil)
	_ InsertableByKey[uint64, user] = (*Repository[uint64, user])(nil)
	_ Updateable[uint64, user]      = (*Repository[uint64, user])(nil)
	_ Insertable[user]              = (*AutoRepository[user])(nil)
	_ Queryable[uint64, user]       = (*AutoRepository[user])(nil)
)

func TestRepository_InsertGetRoundTrip(t *testing.T) {
	repo := newUsers(t)

	alice := user{Name: "alice", Age: 30}
	if _, err := repo.InsertByKey(10, alice); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Key != 10 || got.Value != alice {
		t.Errorf("Get(10) = %+v", got)
	}
}

func TestRepository_AbsentKey(t *testing.T) {
	repo := newUsers(t)

	_, err := repo.Get(404)
	requireStorageError(t, err, domain.TypeNotFound, "get")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}

	_, err = repo.Update(404, user{})
	requireStorageError(t, err, domain.TypeNotFound, "update")

	removed, err := repo.Remove(404)
	if err != nil || removed {
		t.Errorf("Remove(404) = %v, %v", removed, err)
	}
}

func TestRepository_InsertByKeyDuplicate(t *testing.T) {
	repo := newUsers(t)

	first := user{Name: "first"}
	repo.InsertByKey(1, first)

	_, err := repo.InsertByKey(1, user{Name: "second"})
	requireStorageError(t, err, domain.TypeDuplicate, "insert_by_key")

	got, _ := repo.Get(1)
	if got.Value != first {
		t.Errorf("duplicate insert changed stored value: %+v", got.Value)
	}
}

func TestRepository_UpsertAndUpdate(t *testing.T) {
	repo := newUsers(t)

	if _, err := repo.UpsertByKey(1, user{Name: "v1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.UpsertByKey(1, user{Name: "v2"}); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.Get(1); got.Value.Name != "v2" {
		t.Errorf("after upsert = %+v", got.Value)
	}

	if _, err := repo.Update(1, user{Name: "v3"}); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.Get(1); got.Value.Name != "v3" {
		t.Errorf("after update = %+v", got.Value)
	}
}

func TestRepository_Queries(t *testing.T) {
	repo := newUsers(t)
	for _, u := range []user{{"a", 10}, {"b", 20}, {"c", 30}, {"d", 40}} {
		if _, err := repo.Insert(u); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("get many skips missing", func(t *testing.T) {
		got, err := repo.GetMany([]uint64{3, 99, 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Key != 3 || got[1].Key != 1 {
			t.Errorf("GetMany() = %+v", got)
		}
	})

	t.Run("get all in key order", func(t *testing.T) {
		got, _ := repo.GetAll()
		if len(got) != 4 {
			t.Fatalf("GetAll() len = %d", len(got))
		}
		for i, e := range got {
			if e.Key != uint64(i+1) {
				t.Errorf("GetAll()[%d].Key = %d", i, e.Key)
			}
		}
	})

	t.Run("find first match", func(t *testing.T) {
		calls := 0
		hit, found, err := repo.Find(func(_ uint64, u user) bool {
			calls++
			return u.Age >= 20
		})
		if err != nil || !found || hit.Value.Name != "b" {
			t.Errorf("Find() = %+v, %v, %v", hit, found, err)
		}
		if calls != 2 {
			t.Errorf("Find() evaluated %d entries, want 2", calls)
		}

		if _, found, _ := repo.Find(func(uint64, user) bool { return false }); found {
			t.Error("Find() should report no match")
		}
	})

	t.Run("filter", func(t *testing.T) {
		got, _ := repo.Filter(func(_ uint64, u user) bool { return u.Age > 15 && u.Age < 35 })
		if len(got) != 2 || got[0].Value.Name != "b" || got[1].Value.Name != "c" {
			t.Errorf("Filter() = %+v", got)
		}

		none, err := repo.Filter(func(uint64, user) bool { return false })
		if err != nil || none == nil || len(none) != 0 {
			t.Errorf("Filter() with no match = %#v, %v", none, err)
		}
	})

	t.Run("remove many", func(t *testing.T) {
		if err := repo.RemoveMany([]uint64{1, 2, 77}); err != nil {
			t.Fatal(err)
		}
		got, _ := repo.GetAll()
		if len(got) != 2 || got[0].Key != 3 {
			t.Errorf("after RemoveMany = %+v", got)
		}
	})
}

func TestAutoRepository_SequentialKeys(t *testing.T) {
	repo := newUsers(t)

	const n = 5
	for i := 1; i <= n; i++ {
		e, err := repo.Insert(user{Age: i})
		if err != nil {
			t.Fatal(err)
		}
		if e.Key != uint64(i) {
			t.Errorf("insert %d got key %d", i, e.Key)
		}
	}
}

func TestAutoRepository_NoKeyReuseAfterRemove(t *testing.T) {
	repo := newUsers(t)

	for i := 0; i < 3; i++ {
		repo.Insert(user{})
	}
	if removed, _ := repo.Remove(3); !removed {
		t.Fatal("Remove(3) should succeed")
	}

	e, err := repo.Insert(user{Name: "next"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Key != 4 {
		t.Errorf("key after removing the highest = %d, want 4", e.Key)
	}

	// Clearing everything still keeps the counter.
	repo.RemoveMany([]uint64{1, 2, 4})
	e, _ = repo.Insert(user{})
	if e.Key != 5 {
		t.Errorf("key after clearing = %d, want 5", e.Key)
	}
}

func TestAutoRepository_WithoutWatermark(t *testing.T) {
	mm := newManager(t)
	repo := NewAutoRepository[user]("users", newUserMap(t, mm, 0), nil)

	repo.Insert(user{})
	repo.InsertByKey(10, user{})
	e, err := repo.Insert(user{})
	if err != nil {
		t.Fatal(err)
	}
	if e.Key != 11 {
		t.Errorf("Insert() key = %d, want 11", e.Key)
	}
}

func TestAutoRepository_ConcurrentInserts(t *testing.T) {
	repo := newUsers(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Insert(user{}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	n, _ := repo.Container().Len()
	if n != 20 {
		t.Errorf("Len() = %d, want 20", n)
	}
	next, _ := repo.NextKey()
	if next != 21 {
		t.Errorf("NextKey() = %d, want 21", next)
	}
}

func TestRepository_DecodeFailure(t *testing.T) {
	mm := newManager(t)
	r, _ := mm.Get(0, "users")
	raw := stable.NewMap[uint64, string](r, stable.Uint64Key{}, stable.JSONCodec[string]{})
	raw.Insert(1, "not a user object")

	repo := NewRepository("users", stable.NewMap[uint64, user](r, stable.Uint64Key{}, stable.JSONCodec[user]{}))
	_, err := repo.Get(1)
	requireStorageError(t, err, domain.TypeDeserializeError, "get")
}

func TestRepository_Recorder(t *testing.T) {
	rec := &fakeRecorder{}
	repo := newUsers(t, WithRecorder(rec))

	repo.Insert(user{})
	repo.Get(99)

	if len(rec.ops) != 2 {
		t.Fatalf("recorded %d ops, want 2", len(rec.ops))
	}
	if rec.ops[0].method != "insert" || rec.ops[0].err != nil {
		t.Errorf("first op = %+v", rec.ops[0])
	}
	if rec.ops[1].method != "get" || !errors.Is(rec.ops[1].err, domain.ErrNotFound) {
		t.Errorf("second op = %+v", rec.ops[1])
	}
	if rec.ops[1].entity != "users" {
		t.Errorf("entity = %q", rec.ops[1].entity)
	}
}

func TestCellStorage(t *testing.T) {
	mm := newManager(t)
	r, _ := mm.Get(2, "settings")
	cs := NewCellStorage("settings", stable.NewCell[user](r, stable.JSONCodec[user]{}))

	_, err := cs.Get()
	if !domain.IsType(err, domain.TypeUnexpected) {
		t.Fatalf("Get() on empty cell = %v", err)
	}
	if !strings.Contains(err.Error(), "Failed to get settings, not initialized") {
		t.Errorf("message = %q", err.Error())
	}
	requireCellError(t, err, "get")
	if empty, _ := cs.IsEmpty(); !empty {
		t.Error("IsEmpty() should be true")
	}

	if _, err := cs.Set(user{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	got, err := cs.Get()
	if err != nil || got.Name != "x" {
		t.Errorf("Get() = %+v, %v", got, err)
	}

	broken := NewCellStorage("settings", stable.NewCell[uint64](r, failingCodec{}))
	_, err = broken.Set(7)
	requireCellError(t, err, "set")
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Set() error lost its cause: %v", err)
	}
}

func requireCellError(t *testing.T, err error, method string) {
	t.Helper()
	ae, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.MethodName != method {
		t.Errorf("MethodName = %q, want %q", ae.MethodName, method)
	}
	if len(ae.Info) != 2 || ae.Info[0] != "settings" || ae.Info[1] != "storage" {
		t.Errorf("Info = %v", ae.Info)
	}
	if ae.Source != domain.Source {
		t.Errorf("Source = %q", ae.Source)
	}
}

type failingCodec struct{}

func (failingCodec) Encode(uint64) ([]byte, error) { return nil, errors.New("disk full") }
func (failingCodec) Decode([]byte) (uint64, error) { return 0, nil }

func TestAutoRepository_WatermarkFailureStoresNothing(t *testing.T) {
	mm := newManager(t)
	wr, err := mm.Get(1, "users_watermark")
	if err != nil {
		t.Fatal(err)
	}
	repo := NewAutoRepository("users", newUserMap(t, mm, 0), stable.NewCell[uint64](wr, failingCodec{}))

	_, err = repo.Insert(user{Name: "lost"})
	requireStorageError(t, err, domain.TypeSerializeError, "insert")

	if n, _ := repo.Container().Len(); n != 0 {
		t.Errorf("Len() after failed insert = %d, want 0", n)
	}
	if next, _ := repo.NextKey(); next != 1 {
		t.Errorf("NextKey() = %d, want 1", next)
	}
}

func TestAutoRepository_KeysSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	open := func() (*stable.Engine, *AutoRepository[user]) {
		t.Helper()
		e, err := stable.Open(stable.DefaultConfig(dir), slog.Default())
		if err != nil {
			t.Fatal(err)
		}
		mm := stable.NewMemoryManager(e)
		wr, err := mm.Get(1, "users_watermark")
		if err != nil {
			t.Fatal(err)
		}
		return e, NewAutoRepository("users", newUserMap(t, mm, 0), stable.NewCell[uint64](wr, stable.JSONCodec[uint64]{}))
	}

	e, repo := open()
	for i := 1; i <= 3; i++ {
		if _, err := repo.Insert(user{Age: i}); err != nil {
			t.Fatal(err)
		}
	}
	if removed, err := repo.Remove(3); err != nil || !removed {
		t.Fatalf("Remove(3) = %v, %v", removed, err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	e, repo = open()
	defer e.Close()

	got, err := repo.Get(2)
	if err != nil || got.Value.Age != 2 {
		t.Errorf("Get(2) after restart = %+v, %v", got, err)
	}
	entry, err := repo.Insert(user{Name: "after restart"})
	if err != nil {
		t.Fatal(err)
	}
	if entry.Key != 4 {
		t.Errorf("key after restart = %d, want 4", entry.Key)
	}
}
