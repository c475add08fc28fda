package bot

import (
	"testing"

	"efazi/internal/table"
)

func TestSlotFromCaption(t *testing.T) {
	cases := map[string]string{
		"base":               slotBase,
		"Main Rider Sheet":   slotBase,
		"source1":            slotSource1,
		"s1":                 slotSource1,
		"tracking & dates":   slotSource1,
		"Source2":            slotSource2,
		"stores export":      slotSource2,
		"":                   "",
		"yesterday's orders": "",
	}
	for caption, want := range cases {
		if got := slotFromCaption(caption); got != want {
			t.Errorf("caption %q: expected %q, got %q", caption, want, got)
		}
	}
}

func TestSessionStoreFillsSlotsInOrder(t *testing.T) {
	st := newSessionStore()
	tbl := &table.Table{}

	if got := st.store(1, "", tbl); got != slotSource1 {
		t.Errorf("Expected first upload in %s, got %s", slotSource1, got)
	}
	if got := st.store(1, "", tbl); got != slotSource2 {
		t.Errorf("Expected second upload in %s, got %s", slotSource2, got)
	}
	if st.get(1).complete() {
		t.Error("Expected session incomplete before base upload")
	}
	if got := st.store(1, "", tbl); got != slotBase {
		t.Errorf("Expected third upload in %s, got %s", slotBase, got)
	}
	if !st.get(1).complete() {
		t.Error("Expected session complete after three uploads")
	}
}

func TestSessionStoreCaptionOverridesOrder(t *testing.T) {
	st := newSessionStore()
	tbl := &table.Table{}

	st.store(7, slotBase, tbl)
	sess := st.get(7)
	if sess.base == nil {
		t.Fatal("Expected base slot filled")
	}
	missing := sess.missing()
	if len(missing) != 2 || missing[0] != slotSource1 || missing[1] != slotSource2 {
		t.Errorf("Unexpected missing slots: %v", missing)
	}
}

func TestSessionStoreIsolatesChats(t *testing.T) {
	st := newSessionStore()
	tbl := &table.Table{}

	st.store(1, slotBase, tbl)
	if st.get(2).base != nil {
		t.Error("Expected chats to have independent sessions")
	}

	st.clear(1)
	if st.get(1).base != nil {
		t.Error("Expected cleared session to be empty")
	}
}
