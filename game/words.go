package game

import (
	"bufio"
	"errors"
	"math/rand"
	"os"
)

// LoadWords reads a file where each line is a candidate word.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New("word list is empty")
	}
	return words, nil
}

// WordPool hands out words for one game, avoiding repeats until every
// word has been drawn once.
type WordPool struct {
	words []string
	used  map[string]struct{}
}

func NewWordPool(words []string) *WordPool {
	return &WordPool{
		words: words,
		used:  make(map[string]struct{}),
	}
}

// Draw picks uniformly among the words not yet used this game. Once the
// list is exhausted it recycles the full list, so repeats only become
// possible after every word has come up once.
func (wp *WordPool) Draw() string {
	if len(wp.words) == 0 {
		return ""
	}
	available := make([]string, 0, len(wp.words))
	for _, w := range wp.words {
		if _, taken := wp.used[w]; !taken {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		available = wp.words
	}
	word := available[rand.Intn(len(available))]
	wp.used[word] = struct{}{}
	return word
}

// Reset forgets the used set, for a new game.
func (wp *WordPool) Reset() {
	wp.used = make(map[string]struct{})
}
