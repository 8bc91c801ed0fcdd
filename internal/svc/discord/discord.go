package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	jsoniter "github.com/json-iterator/go"
	"github.com/shirokodev/presence-relay/data/structures"
	"github.com/shirokodev/presence-relay/internal/instance"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Options struct {
	Token         string
	TrackedUserID string
}

type discordInst struct {
	session *discordgo.Session
	tracked string

	readyOnce sync.Once
	ready     chan struct{}

	mu           sync.Mutex
	lastPresence *structures.Presence
	fetchedUser  *discordgo.User
	handlers     []func(structures.Presence)
}

// New opens a gateway session with the guild, member and presence
// intents and begins mirroring the tracked user's presence.
func New(ctx context.Context, opt Options) (instance.Discord, error) {
	session, err := discordgo.New("Bot " + opt.Token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildPresences

	inst := &discordInst{
		session: session,
		tracked: opt.TrackedUserID,
		ready:   make(chan struct{}),
	}

	session.AddHandler(inst.onReady)
	session.AddHandler(inst.onEvent)

	if err := session.Open(); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()

		if err := session.Close(); err != nil {
			zap.S().Errorw("discord, session close",
				"error", err,
			)
		}
	}()

	return inst, nil
}

func (d *discordInst) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	zap.S().Infow("logged in",
		"username", r.User.Username,
	)

	d.readyOnce.Do(func() {
		close(d.ready)
	})
}

// onEvent receives every gateway dispatch. Presence payloads are
// decoded from the raw event rather than the library's typed one
// because the typed presence drops the per-device client status.
func (d *discordInst) onEvent(_ *discordgo.Session, e *discordgo.Event) {
	switch e.Type {
	case "PRESENCE_UPDATE":
		var p structures.Presence
		if err := json.Unmarshal(e.RawData, &p); err != nil {
			zap.S().Errorw("discord, bad presence payload",
				"error", err,
			)

			return
		}

		d.dispatchPresence(p)
	case "GUILD_CREATE":
		var g struct {
			ID        string                `json:"id"`
			Presences []structures.Presence `json:"presences"`
		}

		if err := json.Unmarshal(e.RawData, &g); err != nil {
			return
		}

		for _, p := range g.Presences {
			if p.User == nil || p.User.ID != d.tracked {
				continue
			}

			cp := p
			cp.GuildID = g.ID

			d.mu.Lock()
			d.lastPresence = &cp
			d.mu.Unlock()

			break
		}
	}
}

func (d *discordInst) dispatchPresence(p structures.Presence) {
	if p.User != nil {
		if u := d.resolveUser(p.User.ID); u != nil {
			p.User = u
		}
	}

	d.mu.Lock()

	if p.User != nil && p.User.ID == d.tracked {
		cp := p
		d.lastPresence = &cp
	}

	handlers := make([]func(structures.Presence), len(d.handlers))
	copy(handlers, d.handlers)

	d.mu.Unlock()

	for _, fn := range handlers {
		fn(p)
	}
}

// resolveUser builds a full user record from the freshest source
// available: the last forced fetch, then the member cache. Returns nil
// when neither knows the user.
func (d *discordInst) resolveUser(userID string) *structures.User {
	d.mu.Lock()
	fetched := d.fetchedUser
	d.mu.Unlock()

	if fetched != nil && fetched.ID == userID {
		u := convertUser(fetched)
		return &u
	}

	for _, guildID := range d.guildIDs() {
		member, err := d.session.State.Member(guildID, userID)
		if err != nil || member.User == nil {
			continue
		}

		u := convertUser(member.User)

		return &u
	}

	return nil
}

func (d *discordInst) guildIDs() []string {
	d.session.State.RLock()
	defer d.session.State.RUnlock()

	ids := make([]string, 0, len(d.session.State.Guilds))
	for _, g := range d.session.State.Guilds {
		ids = append(ids, g.ID)
	}

	return ids
}

func (d *discordInst) Ready() <-chan struct{} {
	return d.ready
}

func (d *discordInst) Connected() bool {
	select {
	case <-d.ready:
	default:
		return false
	}

	// DataReady is mutated under the session lock on resume and
	// disconnect.
	d.session.RLock()
	defer d.session.RUnlock()

	return d.session.DataReady
}

func (d *discordInst) GuildWithMember(userID string) (string, bool) {
	var matches []string

	for _, guildID := range d.guildIDs() {
		if _, err := d.session.State.Member(guildID, userID); err == nil {
			matches = append(matches, guildID)
		}
	}

	if len(matches) == 0 {
		return "", false
	}

	// Deterministic pick across shared guilds: lowest snowflake.
	best := matches[0]
	for _, id := range matches[1:] {
		if snowflakeLess(id, best) {
			best = id
		}
	}

	return best, true
}

func (d *discordInst) Presence(userID string) (structures.Presence, bool) {
	d.mu.Lock()
	last := d.lastPresence
	d.mu.Unlock()

	if last != nil && last.User != nil && last.User.ID == userID {
		p := *last

		if u := d.resolveUser(userID); u != nil {
			p.User = u
		}

		return p, true
	}

	// No mirrored payload yet: fall back to the library's state cache,
	// which carries everything but the per-device status.
	for _, guildID := range d.guildIDs() {
		sp, err := d.session.State.Presence(guildID, userID)
		if err != nil || sp == nil {
			continue
		}

		p := convertPresence(sp)
		p.GuildID = guildID

		if u := d.resolveUser(userID); u != nil {
			p.User = u
		}

		return p, true
	}

	return structures.Presence{}, false
}

func (d *discordInst) FetchUser(ctx context.Context, userID string) (structures.User, error) {
	u, err := d.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return structures.User{}, err
	}

	d.mu.Lock()
	d.fetchedUser = u
	d.mu.Unlock()

	return convertUser(u), nil
}

func (d *discordInst) OnPresenceUpdate(fn func(structures.Presence)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = append(d.handlers, fn)
}

// snowflakeLess orders discord ids numerically without parsing:
// shorter decimal strings are smaller, equal lengths compare
// lexicographically.
func snowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}
