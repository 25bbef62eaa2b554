package column

import "testing"

func TestConcatenatePureIntegerChunk(t *testing.T) {
	c := NumericFloatChunk([]float64{1, 2, 3}, false)
	arr := Concatenate([]*Chunk{c}, nil, ConflictNone, nil, 6, TakeOver{})
	if arr.Kind != KindInt64 {
		t.Fatalf("expected KindInt64, got %v", arr.Kind)
	}
	if arr.Int64s[0] != 1 || arr.Int64s[2] != 3 {
		t.Errorf("unexpected values: %v", arr.Int64s)
	}
}

func TestConcatenatePureFloatChunk(t *testing.T) {
	c := NumericFloatChunk([]float64{1.5, 2.25}, false)
	arr := Concatenate([]*Chunk{c}, nil, ConflictNone, nil, 6, TakeOver{})
	if arr.Kind != KindFloat64 {
		t.Fatalf("expected KindFloat64, got %v", arr.Kind)
	}
}

func TestConcatenateWithNullGap(t *testing.T) {
	chunks := []*Chunk{
		NumericFloatChunk([]float64{1, 2}, false),
		NullChunk(2),
		NumericFloatChunk([]float64{5}, false),
	}
	arr := Concatenate(chunks, nil, ConflictNone, nil, 6, TakeOver{})
	if arr.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", arr.Len())
	}
	if arr.Valid[2] || arr.Valid[3] {
		t.Errorf("expected rows 2,3 to be null, got Valid=%v", arr.Valid)
	}
	if !arr.Valid[0] || !arr.Valid[4] {
		t.Errorf("expected rows 0,4 to be valid, got Valid=%v", arr.Valid)
	}
}

func TestConcatenateNumericStringCoercion(t *testing.T) {
	chunks := []*Chunk{
		NumericFloatChunk([]float64{1, 2}, false),
		StringChunk([]string{"3"}, nil, false),
	}
	arr := Concatenate(chunks, nil, ConflictNumeric, nil, 6, TakeOver{})
	if arr.Kind != KindFloat64 {
		t.Fatalf("expected coercion to KindFloat64, got %v", arr.Kind)
	}
	if arr.Floats[2] != 3 {
		t.Errorf("expected parsed string value 3, got %v", arr.Floats[2])
	}
}

func TestConcatenateNumericStringCoercionFailureDowngrades(t *testing.T) {
	chunks := []*Chunk{
		NumericFloatChunk([]float64{1}, false),
		StringChunk([]string{"not-a-number"}, nil, false),
	}
	arr := Concatenate(chunks, nil, ConflictNumeric, nil, 6, TakeOver{})
	if arr.Kind != KindString {
		t.Fatalf("expected downgrade to KindString, got %v", arr.Kind)
	}
}

func TestConcatenateAllNullDefaultsToString(t *testing.T) {
	arr := Concatenate([]*Chunk{NullChunk(3)}, nil, ConflictNone, nil, 6, TakeOver{})
	if arr.Kind != KindString {
		t.Fatalf("expected KindString for all-null column, got %v", arr.Kind)
	}
	if arr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", arr.Len())
	}
}
