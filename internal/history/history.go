// Package history keeps the shell's command history, capped and backed
// by a plain text file shared with the readline instance.
package history

import (
	"bufio"
	"os"
	"sync"
)

const maxItems = 1000

type History struct {
	items []string
	file  string
	mu    sync.Mutex
}

func New(file string) (*History, error) {
	h := &History{file: file}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add appends item, trimming the oldest entries past the cap.
func (h *History) Add(item string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, item)
	if len(h.items) > maxItems {
		h.items = h.items[len(h.items)-maxItems:]
	}
}

// GetAll returns a copy of the current history, oldest first.
func (h *History) GetAll() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

// Save writes the history back to its file.
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (h *History) load() error {
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(h.items) > maxItems {
		h.items = h.items[len(h.items)-maxItems:]
	}
	return nil
}
