package output

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
)

type hexID [2]byte

func (h hexID) String() string { return "id-" + string('a'+rune(h[0])) }

type row struct {
	Name    string `json:"name"`
	Keys    uint64 `json:"keys"`
	ID      hexID  `json:"id"`
	Hidden  string `table:"-"`
	Detail  string `json:"detail" table:"wide"`
	private int
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "json", "yaml"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v", s, f, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, false).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML, false).(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter")
	}
	if tf, ok := NewFormatter("unknown", true).(*TableFormatter); !ok || !tf.Wide {
		t.Error("expected wide TableFormatter by default")
	}
}

func TestFormatters(t *testing.T) {
	data := []row{{Name: "users", Keys: 3, ID: hexID{1}, Hidden: "secret", Detail: "more"}}

	tests := []struct {
		name    string
		f       Formatter
		want    []string
		notWant []string
	}{
		{"table", &TableFormatter{}, []string{"NAME", "KEYS", "ID", "users", "3", "id-b"}, []string{"secret", "DETAIL", "PRIVATE"}},
		{"table wide", &TableFormatter{Wide: true}, []string{"DETAIL", "more"}, []string{"secret"}},
		{"table no headers", &TableFormatter{NoHeaders: true}, []string{"users"}, []string{"NAME"}},
		{"json", &JSONFormatter{}, []string{`"name": "users"`, `"keys": 3`}, nil},
		{"yaml", &YAMLFormatter{}, []string{"name: users", "keys: 3", "detail: more"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.f.Format(&buf, data); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestTableFormatter_Shapes(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{"single struct", row{Name: "cell"}, []string{"FIELD", "name", "cell"}},
		{"map", map[string]int{"k": 1}, []string{"KEY", "VALUE", "k", "1"}},
		{"scalar slice", []string{"a", "b"}, []string{"VALUE", "a", "b"}},
		{"stringer slice", []hexID{{0}, {2}}, []string{"id-a", "id-c"}},
		{"pointer slice", []*row{{Name: "p"}}, []string{"p"}},
		{"bytes fall back to json", []byte{1}, []string{`"AQ=="`}},
		{"table value", Table{Headers: []string{"COL"}, Rows: [][]string{{"x"}}}, []string{"COL", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TableFormatter{}).Format(&buf, tt.data); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	type cells struct {
		Empty string
		Hash  []byte
		List  []int
		Big   *big.Int
		Ratio float64
		Flag  bool
	}
	v := cells{Hash: []byte{0xab, 0xcd}, List: []int{1, 2}, Big: big.NewInt(12345678901), Ratio: 0.5, Flag: true}

	var buf bytes.Buffer
	(&TableFormatter{}).Format(&buf, v)
	for _, w := range []string{"-", "abcd", "[2 items]", "12345678901", "0.50", "true"} {
		if !strings.Contains(buf.String(), w) {
			t.Errorf("output missing %q:\n%s", w, buf.String())
		}
	}
}

func TestYAMLFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "null\n" {
		t.Errorf("Format(nil) = %q", buf.String())
	}
}

func TestProgressBar(t *testing.T) {
	var out, sink bytes.Buffer
	bar := NewProgressBar(&out, "backup", 2048)

	w := bar.Writer(&sink)
	w.Write(make([]byte, 1024))
	if !strings.Contains(out.String(), " 50%") {
		t.Errorf("progress after half = %q", out.String())
	}

	r := NewProgressBar(&out, "restore", 0).Reader(strings.NewReader("abc"))
	buf := make([]byte, 8)
	n, _ := r.Read(buf)
	if n != 3 || !strings.Contains(out.String(), "restore 3 B") {
		t.Errorf("reader progress = %q", out.String())
	}

	bar.Finish()
	if !strings.HasSuffix(out.String(), "\n") || !strings.Contains(out.String(), "100%") {
		t.Errorf("finish = %q", out.String())
	}
	if sink.Len() != 1024 {
		t.Errorf("sink received %d bytes", sink.Len())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
