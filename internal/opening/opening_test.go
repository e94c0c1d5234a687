package opening

import (
	"reflect"
	"testing"

	"github.com/notnil/chess"
)

func TestTokenize(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"e4 e5 Nf3", []string{"e4", "e5", "Nf3"}},
		{"  e4   e5 ", []string{"e4", "e5"}},
		{"", nil},
		{"   ", nil},
	} {
		got := Tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestChunkTokens(t *testing.T) {
	tokens := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}

	got := ChunkTokens(tokens, 2)
	want := []string{"e4 e5", "Nf3 Nc6", "Bb5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChunkTokens size 2 = %v, want %v", got, want)
	}

	if got := ChunkTokens(tokens, 10); !reflect.DeepEqual(got, []string{"e4 e5 Nf3 Nc6 Bb5"}) {
		t.Errorf("oversized chunk = %v, want one chunk", got)
	}
	if got := ChunkTokens(tokens, 0); got != nil {
		t.Errorf("ChunkTokens size 0 = %v, want nil", got)
	}
	if got := ChunkTokens(nil, 3); got != nil {
		t.Errorf("ChunkTokens of no tokens = %v, want nil", got)
	}
}

func TestFinalGame(t *testing.T) {
	game, err := FinalGame("e4 e5 Nf3 Nc6 Bb5")
	if err != nil {
		t.Fatalf("FinalGame: %v", err)
	}
	if turn := game.Position().Turn(); turn != chess.Black {
		t.Errorf("side to move = %v, want Black after 5 plies", turn)
	}
}

func TestFinalGame_Errors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		moves string
	}{
		{"empty", ""},
		{"illegal move", "e4 e4"},
		{"nonsense token", "e4 zz9"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FinalGame(tc.moves); err == nil {
				t.Errorf("FinalGame(%q) should fail", tc.moves)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("d4 d5 c4"); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := Validate("d4 d4"); err == nil {
		t.Error("Validate should reject an illegal sequence")
	}
}
