package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/storage"
)

// Service provides the word-legality predicate. The move pipeline itself
// never consults it; the route layer gates play moves on it before they
// reach the engine.
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
		words:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.words[normalize(word)] = struct{}{}
	}
	s.loaded = true
	return nil
}

// IsWord returns true if the word is in the loaded dictionary
func (s *Service) IsWord(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[normalize(word)]
	return ok
}

// Loaded returns true once a word list has been loaded
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// normalize upcases and folds Ё onto Е, which shares a tile in the set
func normalize(word string) string {
	upper := strings.ToUpper(strings.TrimSpace(word))
	return strings.ReplaceAll(upper, "Ё", "Е")
}

// CheckLoaded returns an error if no word list has been loaded yet
func (s *Service) CheckLoaded() error {
	if !s.Loaded() {
		return model.ErrDictionaryNotLoaded
	}
	return nil
}
