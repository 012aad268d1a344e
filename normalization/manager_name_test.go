package normalization

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		raw         string
		wantDisplay string
		wantCut     string
	}{
		{"Алена Морозько (Енисейское)", "Алена Морозько (Енисейское)", "Алена Морозько"},
		{"Иванов Иван Петрович тел. 123-45", "Иванов Иван Петрович", "Иванов Иван"},
		{"Петров Сидор", "Петров Сидор", "Петров Сидор"},
		{"o/п Смирнова Ольга (Ангарское)", "Смирнова Ольга (Ангарское)", "Смирнова Ольга"},
		{"  Ковалев Петр  ", "Ковалев Петр", "Ковалев Петр"},
		{"", "", ""},
	}
	for _, tc := range cases {
		display, cut := Format(tc.raw)
		if display != tc.wantDisplay {
			t.Errorf("Format(%q) display = %q, want %q", tc.raw, display, tc.wantDisplay)
		}
		if cut != tc.wantCut {
			t.Errorf("Format(%q) cut = %q, want %q", tc.raw, cut, tc.wantCut)
		}
	}
}

func TestCutKeyStableAcrossSources(t *testing.T) {
	// Ключ обязан совпадать для имени с телефонным хвостом и без него,
	// иначе рвется сопоставление живых и исторических данных.
	withPhone := CutKey("Иванов Иван Петрович тел. 123-45")
	without := CutKey("Иванов Иван Петрович")
	if withPhone != without {
		t.Errorf("cut key differs: %q vs %q", withPhone, without)
	}
	if withPhone != "Иванов Иван" {
		t.Errorf("cut key = %q, want %q", withPhone, "Иванов Иван")
	}
}
