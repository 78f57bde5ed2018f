package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPlayFileWalksChainInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	var attempts []string
	chain := []Strategy{
		{Name: "first", Play: func(context.Context, string) error {
			attempts = append(attempts, "first")
			return errors.New("device busy")
		}},
		{Name: "second", Play: func(_ context.Context, p string) error {
			attempts = append(attempts, "second")
			if p != path {
				t.Errorf("strategy got path %q", p)
			}
			return nil
		}},
		{Name: "third", Play: func(context.Context, string) error {
			attempts = append(attempts, "third")
			return nil
		}},
	}

	name, err := PlayFile(context.Background(), path, chain)
	if err != nil {
		t.Fatal(err)
	}
	if name != "second" {
		t.Errorf("winning strategy = %q, want second", name)
	}
	if len(attempts) != 2 {
		t.Errorf("attempts = %v, must stop after the first success", attempts)
	}
}

func TestPlayFileAllFail(t *testing.T) {
	chain := []Strategy{
		{Name: "a", Play: func(context.Context, string) error { return errors.New("no") }},
		{Name: "b", Play: func(context.Context, string) error { return errors.New("nope") }},
	}

	_, err := PlayFile(context.Background(), "/nonexistent.mp3", chain)
	if !errors.Is(err, ErrAllStrategiesFailed) {
		t.Errorf("err = %v, want ErrAllStrategiesFailed", err)
	}
}

func TestChainPutsBuiltinFirstForPCM(t *testing.T) {
	chain := Chain("raw-24khz-16bit-mono-pcm")
	if len(chain) == 0 {
		t.Fatal("chain is empty")
	}
	if chain[0].Name != "builtin" {
		t.Errorf("first strategy = %q, want builtin", chain[0].Name)
	}
}
