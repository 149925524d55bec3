package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/motion"
)

func TestDefaultDocument(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Zach Kordas-Potter", c.Profile.Name)
	assert.NotEmpty(t, c.Roles)
	assert.Len(t, c.Projects, 4)
	assert.Equal(t, 1500*time.Millisecond, c.Effects.Cursor.IdleAfter)
	assert.Equal(t, motion.KindSpring, c.Effects.Tilt.Spring.Kind)
	assert.Equal(t, 2*time.Second, c.Effects.Counter.Duration)
	assert.NotEmpty(t, c.Effects.Preloader.Messages, "unset knobs keep their defaults")
}

func TestParseKeepsDefaultsForMissingEffects(t *testing.T) {
	c, err := Parse([]byte("profile: {name: Ada}\nroles: [Engineer]\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEffects(), c.Effects)
}

func TestParseValidates(t *testing.T) {
	_, err := Parse([]byte("roles: []\neffects:\n  trail: {length: 500}\n  reveal: {threshold: 2}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingName)
	assert.ErrorIs(t, err, ErrNoRoles)
	assert.ErrorIs(t, err, motion.ErrInvalidLength)
	assert.ErrorIs(t, err, motion.ErrInvalidThreshold)
}

func TestParseRejectsEngineTimings(t *testing.T) {
	base := "profile: {name: Ada}\nroles: [Engineer]\neffects:\n"
	for name, tc := range map[string]struct {
		effects string
		want    error
	}{
		"type speed":     {"  typewriter: {type_speed: -1s}\n", motion.ErrInvalidDuration},
		"hold empty":     {"  typewriter: {hold_empty: -5ms}\n", motion.ErrInvalidDuration},
		"reveal stagger": {"  reveal_stagger: -100ms\n", motion.ErrInvalidDelay},
		"preloader step": {"  preloader: {step: 0s}\n", motion.ErrInvalidDuration},
		"message every":  {"  preloader: {message_every: -1s}\n", motion.ErrInvalidDuration},
		"frame interval": {"  frame_interval: -16ms\n", motion.ErrInvalidDuration},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(base + tc.effects))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Before}\nroles: [A]\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	store := NewStore(c)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Watch(ctx, path, nil)
	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: Broken}\nroles: []\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "Before", store.Get().Profile.Name)

	require.NoError(t, os.WriteFile(path, []byte("profile: {name: After}\nroles: [A]\n"), 0o644))
	assert.Eventually(t, func() bool { return store.Get().Profile.Name == "After" }, 2*time.Second, 10*time.Millisecond)
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme("")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	assert.Equal(t, ThemeLight, th.Toggle())
	assert.Equal(t, ThemeDark, th.Toggle().Toggle())

	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestStoreNotifiesListeners(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	store := NewStore(c)

	var got, other []string
	remove := store.OnChange(func(c *Content) { got = append(got, c.Profile.Name) })
	store.OnChange(func(c *Content) { other = append(other, c.Profile.Name) })
	store.Set(&Content{Profile: Profile{Name: "Next"}})
	assert.Equal(t, []string{"Next"}, got)

	remove()
	remove()
	store.Set(&Content{Profile: Profile{Name: "Last"}})
	assert.Equal(t, []string{"Next"}, got)
	assert.Equal(t, []string{"Next", "Last"}, other)
}
