package factory

import (
	"time"

	"github.com/eruditgame/erudit-server/internal/dependencies/mocks"
	"github.com/eruditgame/erudit-server/internal/services/auth"
	"github.com/eruditgame/erudit-server/internal/storage/memory"
	"github.com/eruditgame/erudit-server/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small Russian dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// Short words
		"ДА", "НО", "ОН", "МЫ", "ТЫ", "ВЫ", "ИЗ", "ОТ", "ДО", "ЗА",
		"ДОМ", "КОТ", "ЛЕС", "МИР", "СОН", "НОС", "РОТ", "СЫР", "ЧАЙ", "ЩИТ",
		"ТОК", "КИТ", "ЛУК", "МАК", "ПАР", "РАК", "САД", "ТИР", "ШУМ", "ЁЖИК",
		// Medium words
		"ВОДА", "ГОРА", "ДЕЛО", "ЗИМА", "ИГРА", "КНИГА", "ЛУНА", "МОРЕ", "НЕБО",
		"ОКНО", "ПОЛЕ", "РЕКА", "РЫБА", "СТОЛ", "СТУЛ", "ТУЧА", "УТРО", "ХЛЕБ",
		// Longer words
		"СЛОВО", "ЗЕМЛЯ", "ВЕСНА", "ГОРОД", "ДЕРЕВО", "ЗВЕЗДА", "КАМЕНЬ",
		"ЛЕТО", "МЕСТО", "НОЧЬ", "ОСЕНЬ", "ПТИЦА", "СВЕТ", "ТЕПЛО", "ХОЛОД",
	}
	return t.DictionaryService.LoadWords(words)
}
