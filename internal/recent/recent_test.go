package recent

import (
	"reflect"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/mindchord/internal/storage"
)

func TestAddMovesToFrontAndTrims(t *testing.T) {
	kv := storage.NewMemory()
	l, err := Load(kv, WithMax(3))
	if err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"a", "b", "c", "a", "d"} {
		if err := l.Add(id); err != nil {
			t.Fatalf("Add(%q): %v", id, err)
		}
	}

	want := []string{"d", "a", "c"}
	if got := l.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got := l.Rank("c"); got != 2 {
		t.Errorf("Rank(c) = %d, want 2", got)
	}
	if got := l.Rank("b"); got != -1 {
		t.Errorf("Rank(b) = %d, want -1", got)
	}
}

func TestPersistedDocument(t *testing.T) {
	kv := storage.NewMemory()
	l, _ := Load(kv)
	_ = l.Add("undo")
	_ = l.Add("indent")

	data, err := kv.Get(StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(data, "ids.0").String(); got != "indent" {
		t.Errorf("ids.0 = %q, want indent", got)
	}

	again, err := Load(kv)
	if err != nil {
		t.Fatal(err)
	}
	if got := again.IDs(); !reflect.DeepEqual(got, []string{"indent", "undo"}) {
		t.Errorf("reloaded IDs() = %v", got)
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	kv := storage.NewMemory()
	_ = kv.Set(StorageKey, []byte("{not json"))

	l, err := Load(kv)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(l.IDs()) != 0 {
		t.Errorf("IDs() = %v, want empty", l.IDs())
	}
}

func TestClear(t *testing.T) {
	kv := storage.NewMemory()
	l, _ := Load(kv)
	_ = l.Add("a")
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	data, _ := kv.Get(StorageKey)
	if got := gjson.GetBytes(data, "ids.#").Int(); got != 0 {
		t.Errorf("ids.# = %d, want 0", got)
	}
}
