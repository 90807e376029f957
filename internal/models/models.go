package models

import "time"

// Tab is a feature module enabled within a room, looked up by numeric id
// in the static tab registry. Order in Room.Tabs is insertion order and
// meaningful to clients; duplicates by id are forbidden.
type Tab struct {
	TabID int    `json:"tabId"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
}

// ParticipantProfile is what other room members see about a participant.
//
// UserID is either the stable account id of an authenticated caller or a
// freshly generated identifier for an anonymous one. LoginService and
// Picture are only set for authenticated callers.
type ParticipantProfile struct {
	UserID       string `json:"userId"`
	DisplayName  string `json:"displayName"`
	Initials     string `json:"initials"`
	AvatarColor  string `json:"avatarColor"`
	LoginService string `json:"loginService,omitempty"`
	Picture      string `json:"picture,omitempty"`
}

// UserToken pairs a participant with the long-lived secret minted at first
// join. Presenting the secret on a later join identifies the same
// participant without repeating profile negotiation.
type UserToken struct {
	UserID    string `json:"userId"`
	UserToken string `json:"userToken"`
}

// Room is a named, time-bounded, access-controlled container for one
// media session.
//
// Exactly one of Secret / PasswordHash is set, matching PasswordEnabled —
// the scheme is fixed for the room's entire lifetime. Name is unique among
// non-archived rooms only; an archived room's name may be reused.
type Room struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	PasswordEnabled bool                 `json:"passwordEnabled"`
	PasswordHash    string               `json:"-"`
	Secret          string               `json:"secret,omitempty"`
	DefaultTabID    int                  `json:"defaultTabId"`
	Tabs            []Tab                `json:"tabs"`
	Participants    []ParticipantProfile `json:"participants"`
	UserTokens      []UserToken          `json:"-"`
	CreatedAt       time.Time            `json:"createdAt"`
	ValidTill       time.Time            `json:"validTill"`
	Archived        bool                 `json:"archived"`
}

// Snapshot is the public field set published to live subscribers.
// The secret is present only for secret-link rooms, where the subscriber
// necessarily already holds it; password-scheme rooms never expose it.
type Snapshot struct {
	Name            string               `json:"name"`
	PasswordEnabled bool                 `json:"passwordEnabled"`
	Secret          string               `json:"secret,omitempty"`
	DefaultTabID    int                  `json:"defaultTabId"`
	Tabs            []Tab                `json:"tabs"`
	Participants    []ParticipantProfile `json:"participants"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// Snapshot builds the publishable view of the room.
func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		Name:            r.Name,
		PasswordEnabled: r.PasswordEnabled,
		DefaultTabID:    r.DefaultTabID,
		Tabs:            r.Tabs,
		Participants:    r.Participants,
		CreatedAt:       r.CreatedAt,
	}
	if !r.PasswordEnabled {
		s.Secret = r.Secret
	}
	// Empty slices serialize to [] rather than null.
	if s.Tabs == nil {
		s.Tabs = []Tab{}
	}
	if s.Participants == nil {
		s.Participants = []ParticipantProfile{}
	}
	return s
}

// HasTab reports whether a tab with the given id is already active.
func (r *Room) HasTab(tabID int) bool {
	for _, t := range r.Tabs {
		if t.TabID == tabID {
			return true
		}
	}
	return false
}

// Identity is the optional authenticated caller the surrounding account
// system vouches for. A nil *Identity means an anonymous caller.
type Identity struct {
	UserID       string
	FirstName    string
	LastName     string
	Picture      string
	LoginService string
}

// RoomInfo is the pre-join summary returned before any authorization:
// which scheme protects the room, and whether the presented user token
// already identifies a participant.
type RoomInfo struct {
	Name            string `json:"name"`
	PasswordEnabled bool   `json:"passwordEnabled"`
	ExistingUser    bool   `json:"existingUser"`
}
