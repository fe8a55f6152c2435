// Pinpoint Location Game
//
// The host uploads or links an image, writes a prompt ("Where was this photo
// taken?"), and marks a target point. Players join with a short code, click
// where they think the target is, and the host reveals everyone's guesses
// ranked by distance.
//
// Features:
// - One WebSocket endpoint at $path/ws; rooms are created/joined in-protocol
//   with 5-char codes (crypto/rand, collision-checked, case-insensitive)
// - First connection to create a room becomes its host; only the host may
//   start a round, reveal results, reset, or remove players
// - Coordinates are percentages of image width/height, resolution-independent
// - One guess per player per round; re-submitting replaces the earlier guess
// - Guesses are ranked by distance at reveal; ties go to the earlier guess
// - Host disconnect ends the game for everyone and frees the code
// - The target point is broadcast to the whole room on round start; the
//   client hides it from non-host displays
// - In-browser QR button to share the join URL, backed by go-qrcode

package main

import (
	"crypto/rand"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Point is a position on the round image, in percent of image width/height.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GameData is what the host sets when starting a round.
type GameData struct {
	ImageRef    string `json:"imageRef"` // opaque blob/URL, passed through unmodified
	Prompt      string `json:"prompt"`
	TargetPoint Point  `json:"targetPoint"`
}

// Player holds the data we store server-side.
type Player struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Guess is a non-host player's submitted point for the current round.
type Guess struct {
	PlayerID string `json:"playerId"`
	Point    Point  `json:"point"`
}

// RankedGuess is a guess with its computed distance, as sent at reveal.
type RankedGuess struct {
	PlayerID string  `json:"playerId"`
	Point    Point   `json:"point"`
	Distance float64 `json:"distance"`
}

// Phase is the room's current stage.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseResults:
		return "results"
	default:
		return "setup"
	}
}

// Messages coming from clients
type ClientMessage struct {
	Type           string `json:"type"`                     // "createGame", "joinGame", "startGame", "submitGuess", "revealResults", "resetGame", "removePlayer", "renamePlayer"
	RequestedCode  string `json:"requestedCode,omitempty"`  // createGame
	Code           string `json:"code,omitempty"`           // everything else
	Name           string `json:"name,omitempty"`           // joinGame / renamePlayer
	ImageRef       string `json:"imageRef,omitempty"`       // startGame
	Prompt         string `json:"prompt,omitempty"`         // startGame
	TargetPoint    *Point `json:"targetPoint,omitempty"`    // startGame
	Point          *Point `json:"point,omitempty"`          // submitGuess
	TargetPlayerID string `json:"targetPlayerId,omitempty"` // removePlayer
}

// Messages sent to clients
type GameCreatedMessage struct {
	Type     string `json:"type"` // "gameCreated"
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

type JoinedMessage struct {
	Type     string `json:"type"` // "joined"
	Code     string `json:"code"`
	PlayerID string `json:"playerId"`
}

// PlayerListMessage carries the full roster, room-scoped, in join order.
type PlayerListMessage struct {
	Type    string   `json:"type"` // "updatePlayerList"
	Players []Player `json:"players"`
}

type GameStartedMessage struct {
	Type        string `json:"type"` // "gameStarted"
	ImageRef    string `json:"imageRef"`
	Prompt      string `json:"prompt"`
	TargetPoint Point  `json:"targetPoint"`
}

// PlayerGuessedMessage is sent to the host only.
type PlayerGuessedMessage struct {
	Type     string `json:"type"` // "playerGuessed"
	PlayerID string `json:"playerId"`
	Point    Point  `json:"point"`
}

type AllGuessedMessage struct {
	Type string `json:"type"` // "allPlayersGuessed"
}

type ResultsMessage struct {
	Type        string        `json:"type"` // "resultsRevealed"
	Guesses     []RankedGuess `json:"guesses"`
	TargetPoint Point         `json:"targetPoint"`
	WinnerID    string        `json:"winnerId"`
}

type GameResetMessage struct {
	Type string `json:"type"` // "gameReset"
}

type GameEndedMessage struct {
	Type   string `json:"type"` // "gameEnded"
	Reason string `json:"reason"`
}

// Sent to a single client when the host removes them.
type KickedMessage struct {
	Type    string `json:"type"` // "kicked"
	Message string `json:"message"`
}

type AckMessage struct {
	Type  string `json:"type"`  // "ack"
	Event string `json:"event"` // client event being acknowledged
}

// ErrorMessage goes only to the originating connection.
type ErrorMessage struct {
	Type    string `json:"type"`   // "error"
	Event   string `json:"event"`  // client event that failed
	Reason  string `json:"reason"` // "not-found", "code-taken", "not-host", "wrong-phase", "is-host"
	Message string `json:"message"`
}

func errorMessage(event string, err error) ErrorMessage {
	reason := "unknown"
	switch err {
	case errGameNotFound:
		reason = "not-found"
	case errCodeTaken:
		reason = "code-taken"
	case errNotHost:
		reason = "not-host"
	case errWrongPhase:
		reason = "wrong-phase"
	case errIsHost:
		reason = "is-host"
	}

	return ErrorMessage{
		Type:    "error",
		Event:   event,
		Reason:  reason,
		Message: err.Error(),
	}
}

type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
	done chan struct{}
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan any, 8),
		done: make(chan struct{}),
	}
}

// send attempts delivery to a single connection, best-effort. A full buffer
// means the client is too far behind; the message is dropped rather than
// blocking the room.
func send(c *Client, msg any) {
	if c == nil {
		return
	}

	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) readPump(cfg *Config, store *RoomStore) {
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		c.dispatch(cfg, store, msg)
	}
}

// Registry tracks every live connection by its identifier.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func newRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

func (reg *Registry) add(c *Client) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.clients[c.id] = c
}

func (reg *Registry) remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.clients, id)
}

func (reg *Registry) get(id string) *Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return reg.clients[id]
}

func (reg *Registry) count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.clients)
}

// Room is one game session. Every mutation happens under mu, and every
// broadcast reads its snapshot under the same hold of mu as the mutation
// that produced it. Rooms lock independently of each other.
type Room struct {
	mu sync.Mutex

	code   string
	hostID string

	players   map[string]*Player
	joinOrder []string

	phase    Phase
	gameData *GameData

	guesses    map[string]*Guess
	guessOrder []string        // first-submission order, the ranking tie-break
	eligible   map[string]bool // roster at round start, minus the host

	clients map[string]*Client
	closed  bool
}

func newRoom(code string, host *Client) *Room {
	return &Room{
		code:   code,
		hostID: host.id,
		players: map[string]*Player{
			host.id: {ID: host.id, Name: "Host"},
		},
		joinOrder: []string{host.id},
		guesses:   make(map[string]*Guess),
		eligible:  make(map[string]bool),
		clients:   map[string]*Client{host.id: host},
	}
}

func (r *Room) broadcastLocked(msg any, excluding string) {
	for id, c := range r.clients {
		if id == excluding {
			continue
		}

		select {
		case c.send <- msg:
		default:
			delete(r.clients, id)
		}
	}
}

func (r *Room) broadcastRosterLocked() {
	players := make([]Player, 0, len(r.players))
	for _, id := range r.joinOrder {
		if p, ok := r.players[id]; ok {
			players = append(players, *p)
		}
	}

	r.broadcastLocked(PlayerListMessage{
		Type:    "updatePlayerList",
		Players: players,
	}, "")
}

// BroadcastRoster sends the full roster to every member.
func (r *Room) BroadcastRoster() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.broadcastRosterLocked()
}

func (r *Room) addPlayer(c *Client, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errGameNotFound
	}

	if p, ok := r.players[c.id]; ok {
		if name != "" {
			p.Name = name
		}
	} else {
		r.players[c.id] = &Player{ID: c.id, Name: name}
		r.joinOrder = append(r.joinOrder, c.id)
	}
	r.clients[c.id] = c

	r.broadcastRosterLocked()

	return nil
}

// StartRound stores the round data, freezes the set of eligible guessers,
// and moves the room to Playing. The target point goes to every member;
// hiding it from non-host displays is the client's responsibility.
func (r *Room) StartRound(byID string, data GameData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byID != r.hostID {
		return errNotHost
	}
	if r.phase != PhaseSetup {
		return errWrongPhase
	}

	gd := data
	r.gameData = &gd
	r.guesses = make(map[string]*Guess)
	r.guessOrder = nil
	r.eligible = make(map[string]bool)
	for id := range r.players {
		if id != r.hostID {
			r.eligible[id] = true
		}
	}
	r.phase = PhasePlaying

	r.broadcastLocked(GameStartedMessage{
		Type:        "gameStarted",
		ImageRef:    gd.ImageRef,
		Prompt:      gd.Prompt,
		TargetPoint: gd.TargetPoint,
	}, "")

	return nil
}

// SubmitGuess upserts the player's guess for the current round,
// last-write-wins. The host is notified of each guess; the whole room is
// told once every eligible player has guessed.
func (r *Room) SubmitGuess(byID string, point Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying {
		return errWrongPhase
	}
	if byID == r.hostID {
		return errIsHost
	}
	if !r.eligible[byID] {
		// Joined after the round started; they can play the next one.
		return errWrongPhase
	}

	if _, ok := r.guesses[byID]; !ok {
		r.guessOrder = append(r.guessOrder, byID)
	}
	r.guesses[byID] = &Guess{PlayerID: byID, Point: point}

	send(r.clients[r.hostID], PlayerGuessedMessage{
		Type:     "playerGuessed",
		PlayerID: byID,
		Point:    point,
	})

	if len(r.guesses) == len(r.eligible) {
		r.broadcastLocked(AllGuessedMessage{Type: "allPlayersGuessed"}, "")
	}

	return nil
}

// distance converts the gap between two points into the units the client
// displays: percent-of-image, scaled by a fixed presentation factor of 2.
func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y) * 2
}

// RevealResults ranks all guesses by distance to the target and moves the
// room to Results. Equal distances rank by first submission, so the order
// is deterministic. Each guesser's score becomes max(0, 100 - distance).
func (r *Room) RevealResults(byID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byID != r.hostID {
		return errNotHost
	}
	if r.phase != PhasePlaying {
		return errWrongPhase
	}

	target := r.gameData.TargetPoint

	ranked := make([]RankedGuess, 0, len(r.guesses))
	for _, id := range r.guessOrder {
		g, ok := r.guesses[id]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedGuess{
			PlayerID: id,
			Point:    g.Point,
			Distance: distance(g.Point, target),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	winnerID := ""
	if len(ranked) > 0 {
		winnerID = ranked[0].PlayerID
	}

	for _, g := range ranked {
		if p, ok := r.players[g.PlayerID]; ok {
			p.Score = math.Max(0, 100-g.Distance)
		}
	}

	r.phase = PhaseResults

	r.broadcastLocked(ResultsMessage{
		Type:        "resultsRevealed",
		Guesses:     ranked,
		TargetPoint: target,
		WinnerID:    winnerID,
	}, "")
	r.broadcastRosterLocked()

	return nil
}

// ResetRound clears the round data and returns the room to Setup with the
// roster intact. Legal from any phase; resetting an already-Setup room is
// a no-op apart from the broadcast.
func (r *Room) ResetRound(byID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byID != r.hostID {
		return errNotHost
	}

	r.gameData = nil
	r.guesses = make(map[string]*Guess)
	r.guessOrder = nil
	r.eligible = make(map[string]bool)
	r.phase = PhaseSetup

	r.broadcastLocked(GameResetMessage{Type: "gameReset"}, "")

	return nil
}

// RemovePlayer is the host-only kick. Removing an unknown player is a no-op.
func (r *Room) RemovePlayer(byID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byID != r.hostID {
		return errNotHost
	}
	if targetID == r.hostID {
		return errIsHost
	}
	if _, ok := r.players[targetID]; !ok {
		return nil
	}

	r.removePlayerLocked(targetID, true)
	r.broadcastRosterLocked()

	return nil
}

// RenamePlayer updates the requesting player's own name.
func (r *Room) RenamePlayer(byID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[byID]
	if !ok || name == "" {
		return nil
	}
	p.Name = name

	r.broadcastRosterLocked()

	return nil
}

func (r *Room) removePlayerLocked(id string, kicked bool) {
	delete(r.players, id)

	dst := r.joinOrder[:0]
	for _, existing := range r.joinOrder {
		if existing == id {
			continue
		}
		dst = append(dst, existing)
	}
	r.joinOrder = dst

	if _, ok := r.guesses[id]; ok {
		delete(r.guesses, id)

		order := r.guessOrder[:0]
		for _, existing := range r.guessOrder {
			if existing == id {
				continue
			}
			order = append(order, existing)
		}
		r.guessOrder = order
	}
	delete(r.eligible, id)

	if c, ok := r.clients[id]; ok {
		if kicked {
			send(c, KickedMessage{
				Type:    "kicked",
				Message: "You have been removed by the host.",
			})
		}
		delete(r.clients, id)
	}
}

// RoomStore maps live game codes to rooms. Codes are unique
// case-insensitively among live rooms only; a code frees up when its room
// is deleted.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func newRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*Room),
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomGameCode generates a 5-char crypto-random game code.
func randomGameCode() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	out := make([]byte, 5)
	for i := range out {
		out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(out)
}

// CreateRoom makes the requesting connection the host of a new room. An
// explicit code fails if a live room already holds it; a generated code is
// retried until it is free.
func (s *RoomStore) CreateRoom(c *Client, requestedCode string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := normalizeCode(requestedCode)
	if code != "" {
		if _, taken := s.rooms[code]; taken {
			return nil, errCodeTaken
		}
	} else {
		for {
			code = randomGameCode()
			if _, taken := s.rooms[code]; !taken {
				break
			}
		}
	}

	room := newRoom(code, c)
	s.rooms[code] = room

	return room, nil
}

// JoinRoom adds the connection to the room, in any phase. A player joining
// mid-round is not eligible to guess until the next round starts.
func (s *RoomStore) JoinRoom(c *Client, code, name string) (*Room, error) {
	room := s.Get(code)
	if room == nil {
		return nil, errGameNotFound
	}

	if err := room.addPlayer(c, name); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *RoomStore) Get(code string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rooms[normalizeCode(code)]
}

func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, normalizeCode(code))
}

// DropConnection applies the disconnect transition to every room holding
// this connection: non-host players are removed from the roster and any
// guess they made; a host disconnect ends the game for the whole room.
func (s *RoomStore) DropConnection(cfg *Config, c *Client) {
	s.mu.RLock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.RUnlock()

	var ended []string

	for _, r := range rooms {
		r.mu.Lock()

		if r.closed {
			r.mu.Unlock()
			continue
		}
		if _, ok := r.players[c.id]; !ok {
			r.mu.Unlock()
			continue
		}

		if c.id == r.hostID {
			r.closed = true
			r.broadcastLocked(GameEndedMessage{
				Type:   "gameEnded",
				Reason: "Host disconnected",
			}, c.id)
			ended = append(ended, r.code)
			logf(cfg, "GAMES: Host left %s, game ended", r.code)
		} else {
			r.removePlayerLocked(c.id, false)
			r.broadcastRosterLocked()
			logf(cfg, "GAMES: Connection %s left %s", c.id, r.code)
		}

		r.mu.Unlock()
	}

	for _, code := range ended {
		s.Delete(code)
	}
}

func (c *Client) dispatch(cfg *Config, store *RoomStore, msg ClientMessage) {
	switch msg.Type {
	case "createGame":
		room, err := store.CreateRoom(c, msg.RequestedCode)
		if err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}

		logf(cfg, "GAMES: Connection %s created game %s", c.id, room.code)
		send(c, GameCreatedMessage{
			Type:     "gameCreated",
			Code:     room.code,
			PlayerID: c.id,
		})
		room.BroadcastRoster()

	case "joinGame":
		room, err := store.JoinRoom(c, msg.Code, msg.Name)
		if err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}

		logf(cfg, "GAMES: Player %q joined %s", msg.Name, room.code)
		send(c, JoinedMessage{
			Type:     "joined",
			Code:     room.code,
			PlayerID: c.id,
		})

	case "startGame":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}
		if msg.TargetPoint == nil {
			return
		}

		err := room.StartRound(c.id, GameData{
			ImageRef:    msg.ImageRef,
			Prompt:      msg.Prompt,
			TargetPoint: *msg.TargetPoint,
		})
		if err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}
		logf(cfg, "GAMES: Round started in %s", room.code)

	case "submitGuess":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}
		if msg.Point == nil {
			return
		}

		if err := room.SubmitGuess(c.id, *msg.Point); err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}
		send(c, AckMessage{Type: "ack", Event: msg.Type})

	case "revealResults":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}

		if err := room.RevealResults(c.id); err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}
		logf(cfg, "GAMES: Results revealed in %s", room.code)

	case "resetGame":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}

		if err := room.ResetRound(c.id); err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}
		send(c, AckMessage{Type: "ack", Event: msg.Type})

	case "removePlayer":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}

		if err := room.RemovePlayer(c.id, msg.TargetPlayerID); err != nil {
			send(c, errorMessage(msg.Type, err))
			return
		}

	case "renamePlayer":
		room := store.Get(msg.Code)
		if room == nil {
			send(c, errorMessage(msg.Type, errGameNotFound))
			return
		}

		_ = room.RenamePlayer(c.id, msg.Name)

	default:
		// ignore unknown types
	}
}

func newUpgrader(cfg *Config) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			if len(cfg.allowedOrigins) == 0 {
				u, err := url.Parse(origin)

				return err == nil && strings.EqualFold(u.Host, r.Host)
			}

			for _, allowed := range cfg.allowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}

			return false
		},
	}
}

// WebSocket handler; every game event for this connection flows through here.
func serveWS(cfg *Config, reg *Registry, store *RoomStore) httprouter.Handle {
	upgrader := newUpgrader(cfg)

	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "GAMES: Websocket upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := newClient(conn)

		reg.add(client)
		logf(cfg, "GAMES: Connection %s opened from %s (%d active)", client.id, realIP(r), reg.count())

		go client.writePump()
		client.readPump(cfg, store)

		// The read pump has drained every event this connection sent before
		// it went away, so the disconnect transition runs strictly after them.
		reg.remove(client.id)
		store.DropConnection(cfg, client)
		close(client.done)
		_ = conn.Close()
		logf(cfg, "GAMES: Connection %s closed (%d active)", client.id, reg.count())
	}
}

// QR handler: generates a PNG QR code for a room's join URL using go-qrcode.
func qrHandler(cfg *Config, store *RoomStore) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := normalizeCode(ps.ByName("code"))
		if store.Get(code) == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		joinURL := scheme + "://" + r.Host + cfg.prefix + "/location?code=" + code

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data, err := assets.ReadFile("assets/location/index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(data)
	}
}

// registerLocationGame sets up routes so that:
//   - $path           → HTML client
//   - $path/ws        → WebSocket carrying the whole game protocol
//   - $path/qr/:code  → PNG QR code for a room's join URL
func registerLocationGame(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	reg := newRegistry()
	store := newRoomStore()

	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	// Shared assets (no code in route)
	mux.GET(cfg.prefix+"/assets/location/app.css", serveAssets(cfg, errs))
	mux.GET(cfg.prefix+"/assets/location/app.js", serveAssets(cfg, errs))

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, reg, store))

	mux.GET(cfg.prefix+path+"/qr/:code", qrHandler(cfg, store))
}
