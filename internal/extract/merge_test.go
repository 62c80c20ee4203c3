package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdfsift/pdfsift/internal/schema"
)

func found(value string) FieldResult {
	return FieldResult{Value: value, MatchType: MatchFound, Page: 1}
}

func TestMerge(t *testing.T) {
	fields := []schema.Field{
		{Name: "a", Kind: schema.KindText},
		{Name: "b", Kind: schema.KindText},
		{Name: "c", Kind: schema.KindText},
	}

	r1 := Result{"a": found("1"), "b": found("2")}
	r2 := Result{"c": found("3")}

	t.Run("disjoint union covers schema", func(t *testing.T) {
		merged, err := Merge([]Result{r1, r2}, fields)
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if len(merged) != 3 {
			t.Fatalf("got %d entries, want 3", len(merged))
		}
		if merged["c"].Value != "3" {
			t.Errorf("merged[c].Value = %v", merged["c"].Value)
		}
	})

	t.Run("order independent", func(t *testing.T) {
		ab, err := Merge([]Result{r1, r2}, fields)
		if err != nil {
			t.Fatal(err)
		}
		ba, err := Merge([]Result{r2, r1}, fields)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ab, ba) {
			t.Error("merge result depends on batch completion order")
		}
	})

	t.Run("duplicate across batches is internal error", func(t *testing.T) {
		_, err := Merge([]Result{r1, {"b": found("again")}, r2}, fields)

		var dup *DuplicateResultError
		if !errors.As(err, &dup) {
			t.Fatalf("error = %v, want DuplicateResultError", err)
		}
		if dup.Name != "b" {
			t.Errorf("Name = %q, want %q", dup.Name, "b")
		}
	})

	t.Run("missing field names the field", func(t *testing.T) {
		_, err := Merge([]Result{r1}, fields)

		var missing *FieldMissingError
		if !errors.As(err, &missing) {
			t.Fatalf("error = %v, want FieldMissingError", err)
		}
		if missing.Name != "c" {
			t.Errorf("Name = %q, want %q", missing.Name, "c")
		}
	})

	t.Run("extra field from backend is rejected", func(t *testing.T) {
		_, err := Merge([]Result{r1, r2, {"ghost": found("boo")}}, fields)

		var extra *UnexpectedFieldError
		if !errors.As(err, &extra) {
			t.Fatalf("error = %v, want UnexpectedFieldError", err)
		}
		if extra.Name != "ghost" {
			t.Errorf("Name = %q, want %q", extra.Name, "ghost")
		}
	})
}
