// pkg/fallback/fallback.go
//
// Локальное резервное хранилище обращений: единый JSON-файл с массивом
// записей. Используется только когда основное хранилище недоступно.

package fallback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Record - обращение в том виде, в каком оно ложится в резервный файл.
// Поле SavedToDatabase всегда false: в файл попадает только то,
// что не удалось записать в основное хранилище.
type Record struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Subject         string    `json:"subject"`
	Reason          string    `json:"reason,omitempty"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	IPAddress       string    `json:"ip_address,omitempty"`
	UserAgent       string    `json:"user_agent,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	SavedToDatabase bool      `json:"saved_to_database"`
	FallbackReason  string    `json:"fallback_reason"`
}

// StoreInterface - контракт резервного хранилища.
type StoreInterface interface {
	Append(rec Record) error
}

// Store сериализует конкурентные записи мьютексом; сам файл
// обновляется через запись во временный файл и атомарный rename,
// чтобы параллельные падения в fallback не теряли записи.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}

	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать резервные записи: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fallback-*")
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) readAll() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать резервный файл: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("резервный файл повреждён: %w", err)
	}
	return records, nil
}
