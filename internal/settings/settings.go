// Package settings holds the application-wide user preferences.
//
// A single Store is loaded at startup and lives for the whole process.
// Views read it with Get and register for changes with Subscribe.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/verte-zerg/typemaster/internal/model"
)

// Keys used in the key/value table.
const (
	KeyDarkMode   = "isDarkMode"
	KeyFontSize   = "fontSize"
	KeyFontFamily = "fontFamily"
	KeyUsername   = "username"
)

const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
	DefaultFamily   = "inter"
	maxUsernameLen  = 32
)

var (
	// ErrInvalidValue is returned when a setting fails validation.
	ErrInvalidValue = errors.New("invalid setting value")
	// ErrUnknownKey is returned for keys outside the known set.
	ErrUnknownKey = errors.New("unknown setting")
)

// FontFamily is a selectable font family.
type FontFamily struct {
	Value string
	Label string
}

// FontFamilies lists the selectable families in display order.
var FontFamilies = []FontFamily{
	{Value: "inter", Label: "Inter"},
	{Value: "roboto", Label: "Roboto"},
	{Value: "opensans", Label: "Open Sans"},
	{Value: "poppins", Label: "Poppins"},
	{Value: "mono", Label: "Roboto Mono"},
	{Value: "serif", Label: "Times New Roman"},
}

// KV is the persistence the store writes through to.
type KV interface {
	ListSettings(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Store is the process-wide settings object.
type Store struct {
	mu     sync.RWMutex
	kv     KV
	cur    model.Settings
	subs   map[int]func(model.Settings)
	nextID int
}

// Defaults returns the settings used before anything is stored. Dark mode
// follows the terminal background.
func Defaults() model.Settings {
	return model.Settings{
		DarkMode:   termenv.HasDarkBackground(),
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFamily,
	}
}

// Load reads stored values over defaults. Malformed stored values are
// ignored and keep their default.
func Load(ctx context.Context, kv KV, defaults model.Settings) (*Store, error) {
	stored, err := kv.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cur := defaults
	for key, value := range stored {
		next, err := apply(cur, key, value)
		if err != nil {
			continue
		}
		cur = next
	}
	return &Store{kv: kv, cur: cur, subs: map[int]func(model.Settings){}}, nil
}

// Get returns the current settings.
func (s *Store) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe registers fn to run after every change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(model.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SetDarkMode persists the theme flag.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	return s.Set(ctx, KeyDarkMode, strconv.FormatBool(on))
}

// ToggleDarkMode flips the theme flag.
func (s *Store) ToggleDarkMode(ctx context.Context) error {
	return s.SetDarkMode(ctx, !s.Get().DarkMode)
}

// SetFontSize persists the font size.
func (s *Store) SetFontSize(ctx context.Context, size int) error {
	return s.Set(ctx, KeyFontSize, strconv.Itoa(size))
}

// SetFontFamily persists the font family.
func (s *Store) SetFontFamily(ctx context.Context, family string) error {
	return s.Set(ctx, KeyFontFamily, family)
}

// SetUsername persists the display name used on the leaderboard.
func (s *Store) SetUsername(ctx context.Context, name string) error {
	return s.Set(ctx, KeyUsername, name)
}

// Set validates, persists and publishes one value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	next, err := apply(s.cur, key, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.kv.SetSetting(ctx, key, normalized(next, key)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	s.cur = next
	subs := make([]func(model.Settings), 0, len(s.subs))
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Value returns the string form of one setting.
func (s *Store) Value(key string) (string, error) {
	cur := s.Get()
	if !IsKnownKey(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return normalized(cur, key), nil
}

// Keys lists known keys in display order.
func Keys() []string {
	return []string{KeyDarkMode, KeyFontSize, KeyFontFamily, KeyUsername}
}

// IsKnownKey reports whether key is a known setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// NextFontFamily cycles through FontFamilies.
func NextFontFamily(current string, delta int) string {
	idx := 0
	for i, f := range FontFamilies {
		if f.Value == current {
			idx = i
			break
		}
	}
	n := len(FontFamilies)
	idx = ((idx+delta)%n + n) % n
	return FontFamilies[idx].Value
}

// FontFamilyLabel returns the display label for a family value.
func FontFamilyLabel(value string) string {
	for _, f := range FontFamilies {
		if f.Value == value {
			return f.Label
		}
	}
	return value
}

func apply(cur model.Settings, key, value string) (model.Settings, error) {
	switch key {
	case KeyDarkMode:
		on, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return cur, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		cur.DarkMode = on
	case KeyFontSize:
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || size < MinFontSize || size > MaxFontSize {
			return cur, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidValue, key, MinFontSize, MaxFontSize)
		}
		cur.FontSize = size
	case KeyFontFamily:
		family := strings.ToLower(strings.TrimSpace(value))
		known := false
		for _, f := range FontFamilies {
			if f.Value == family {
				known = true
				break
			}
		}
		if !known {
			return cur, fmt.Errorf("%w: unknown font family %q", ErrInvalidValue, value)
		}
		cur.FontFamily = family
	case KeyUsername:
		name := strings.TrimSpace(value)
		if len([]rune(name)) > maxUsernameLen {
			return cur, fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidValue, key, maxUsernameLen)
		}
		cur.Username = name
	default:
		return cur, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return cur, nil
}

func normalized(s model.Settings, key string) string {
	switch key {
	case KeyDarkMode:
		return strconv.FormatBool(s.DarkMode)
	case KeyFontSize:
		return strconv.Itoa(s.FontSize)
	case KeyFontFamily:
		return s.FontFamily
	case KeyUsername:
		return s.Username
	default:
		return ""
	}
}
