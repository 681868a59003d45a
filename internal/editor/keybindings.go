package editor

import (
	"sort"

	"github.com/philipparndt/gosolid/pkg/signals"
)

// Keybindings tracks the commands currently offered to the user, as
// announced on KeybindingsRegistered and KeybindingsCleared
type Keybindings struct {
	commands map[string]int
	subs     []signals.Subscription
}

// NewKeybindings subscribes a tracker to sigs
func NewKeybindings(sigs *Signals) *Keybindings {
	k := &Keybindings{commands: make(map[string]int)}
	k.subs = append(k.subs,
		sigs.KeybindingsRegistered.Add(k.add),
		sigs.KeybindingsCleared.Add(k.delete),
	)
	return k
}

// Commands returns the active commands, sorted
func (k *Keybindings) Commands() []string {
	out := make([]string, 0, len(k.commands))
	for cmd := range k.commands {
		out = append(out, cmd)
	}
	sort.Strings(out)
	return out
}

// Dispose unsubscribes the tracker
func (k *Keybindings) Dispose() {
	for _, sub := range k.subs {
		sub.Dispose()
	}
	k.subs = nil
}

// add counts registrations so nested sessions offering the same command
// keep it until the last one clears it
func (k *Keybindings) add(commands []string) {
	for _, cmd := range commands {
		k.commands[cmd]++
	}
}

func (k *Keybindings) delete(commands []string) {
	for _, cmd := range commands {
		if k.commands[cmd] <= 1 {
			delete(k.commands, cmd)
			continue
		}
		k.commands[cmd]--
	}
}
