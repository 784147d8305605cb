package game

// PlayerType distinguishes human-driven seats from AI-driven seats.
type PlayerType string

const (
	PlayerHuman PlayerType = "human"
	PlayerAI    PlayerType = "ai"
)

// Phase is the battle lifecycle phase.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseInProgress Phase = "in_progress"
	PhaseVictory    Phase = "victory"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// CombatType determines how far a battlefield card can reach (see the
// engine's range rule).
type CombatType string

const (
	CombatMelee  CombatType = "melee"
	CombatArcane CombatType = "arcane"
	CombatRanged CombatType = "ranged"
)

// Position addresses a battlefield cell. Row 0 is the top edge.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GridConfig describes the battlefield dimensions. Rows must be even: the top
// half belongs to the first player in turn order, the bottom half to the
// second.
type GridConfig struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Contains reports whether the position lies on the grid.
func (g GridConfig) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// AbilityEffect is a flexible description of what an ability does when used.
// All fields are optional and applied when present.
type AbilityEffect struct {
	// Direct damage to a target enemy card.
	Damage int `json:"damage"`
	// Healing applied to a target allied card (capped at max HP).
	Heal int `json:"heal"`

	// Self stat buffs, applied as status effects for BuffDuration turns.
	AttackBuffPercent  int `json:"attack_buff_percent"`
	DefenseBuffPercent int `json:"defense_buff_percent"`
	SpeedBuffPercent   int `json:"speed_buff_percent"`
	BuffDuration       int `json:"buff_duration"`
}

// Ability combines human-readable metadata with the structured effect payload
// and the cooldown bookkeeping the engine maintains per battle card.
type Ability struct {
	Key             string        `json:"key"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	ManaCost        int           `json:"mana_cost"`
	Cooldown        int           `json:"cooldown"`
	CurrentCooldown int           `json:"current_cooldown"`
	Effect          AbilityEffect `json:"effect"`
}

// Card is a deck/hand card. Stats are the card's base values; battlefield
// modifiers (formation, weather, status effects) are computed fresh by the
// engine and never written back here.
type Card struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Attack       int        `json:"attack"`
	Defense      int        `json:"defense"`
	HitPoints    int        `json:"hit_points"`
	MaxHitPoints int        `json:"max_hit_points"`
	Speed        int        `json:"speed"`
	ManaCost     int        `json:"mana_cost"`
	Rarity       Rarity     `json:"rarity"`
	CombatType   CombatType `json:"combat_type"`
	Abilities    []Ability  `json:"abilities"`
}

// StatusEffect is a timed modifier attached to a battle card by an ability.
type StatusEffect struct {
	Type      string `json:"type"`
	Magnitude int    `json:"magnitude"`
	Duration  int    `json:"duration"`
}

// Status effect types applied by ability effects.
const (
	StatusAttackBuff  = "attack_buff"
	StatusDefenseBuff = "defense_buff"
	StatusSpeedBuff   = "speed_buff"
)

// BattleCard is a card deployed on the battlefield.
type BattleCard struct {
	Card
	Position      Position       `json:"position"`
	OwnerID       string         `json:"owner_id"`
	HasMoved      bool           `json:"has_moved"`
	HasAttacked   bool           `json:"has_attacked"`
	StatusEffects []StatusEffect `json:"status_effects"`
}

// Personality holds the tunable coefficients driving AI decision making.
// All values are expected in [0,1].
type Personality struct {
	Aggression    float64 `json:"aggression"`
	Patience      float64 `json:"patience"`
	Creativity    float64 `json:"creativity"`
	Adaptability  float64 `json:"adaptability"`
	RiskTolerance float64 `json:"risk_tolerance"`
}

// Player is one of the two battle participants.
type Player struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        PlayerType   `json:"type"`
	CastleHP    int          `json:"castle_hp"`
	MaxCastleHP int          `json:"max_castle_hp"`
	Mana        int          `json:"mana"`
	MaxMana     int          `json:"max_mana"`
	Hand        []Card       `json:"hand"`
	Deck        []Card       `json:"deck"`
	Personality *Personality `json:"ai_personality,omitempty"`
	// LPBonus is an externally supplied loyalty multiplier folded into
	// combat math by the engine. 1.0 means no bonus.
	LPBonus float64 `json:"lp_bonus"`
}

// FormationType identifies a positional pattern granting combat modifiers.
type FormationType string

const (
	FormationSiege      FormationType = "SIEGE"
	FormationPhalanx    FormationType = "PHALANX"
	FormationVanguard   FormationType = "VANGUARD"
	FormationArcherLine FormationType = "ARCHER_LINE"
	FormationFlanking   FormationType = "FLANKING"
	FormationSkirmish   FormationType = "SKIRMISH"
)

// FormationBonus is the multiplicative modifier granted by a formation.
// Unlisted modifiers stay at 1.0.
type FormationBonus struct {
	Type       FormationType `json:"type"`
	AttackMod  float64       `json:"attack_mod"`
	DefenseMod float64       `json:"defense_mod"`
	SpeedMod   float64       `json:"speed_mod"`
}

// WeatherType identifies a battlefield-wide weather condition.
type WeatherType string

const (
	WeatherRain      WeatherType = "RAIN"
	WeatherStorm     WeatherType = "STORM"
	WeatherFog       WeatherType = "FOG"
	WeatherSnow      WeatherType = "SNOW"
	WeatherSandstorm WeatherType = "SANDSTORM"
)

// WeatherEffect modifies every combat calculation for both players while it
// lasts.
type WeatherEffect struct {
	Type           WeatherType `json:"type"`
	AttackMod      float64     `json:"attack_mod"`
	DefenseMod     float64     `json:"defense_mod"`
	SpeedMod       float64     `json:"speed_mod"`
	TurnsRemaining int         `json:"turns_remaining"`
}

// ActionType enumerates the closed set of battle actions.
type ActionType string

const (
	ActionDeployCard   ActionType = "deploy_card"
	ActionAttackCard   ActionType = "attack_card"
	ActionAttackCastle ActionType = "attack_castle"
	ActionUseAbility   ActionType = "use_ability"
	ActionEndTurn      ActionType = "end_turn"
	ActionSurrender    ActionType = "surrender"
)

// Action carries the identifiers needed to validate and apply one battle
// action. Fields irrelevant to the action type are left zero.
type Action struct {
	Type           ActionType `json:"type"`
	PlayerID       string     `json:"player_id"`
	CardID         string     `json:"card_id,omitempty"`
	Position       *Position  `json:"position,omitempty"`
	TargetCardID   string     `json:"target_card_id,omitempty"`
	TargetPlayerID string     `json:"target_player_id,omitempty"`
	AbilityKey     string     `json:"ability_key,omitempty"`
}

// Rules carries the per-battle tunables that transitions need after
// initialization. They travel with the snapshot so a serialized state is
// self-contained.
type Rules struct {
	StartingHandSize int `json:"starting_hand_size"`
	StartingMana     int `json:"starting_mana"`
	ManaCap          int `json:"mana_cap"`
}

// LogEntry is one append-only battle log record.
type LogEntry struct {
	Turn     int    `json:"turn"`
	PlayerID string `json:"player_id"`
	Action   string `json:"action"`
	Result   string `json:"result"`
}

// BattleState is the canonical, fully serializable battle snapshot. Engine
// transitions never mutate a state in place; they clone it and return the
// clone, so past states stay valid for replay.
type BattleState struct {
	Grid         GridConfig             `json:"grid"`
	Rules        Rules                  `json:"rules"`
	Battlefield  [][]*BattleCard        `json:"battlefield"`
	Players      map[string]*Player     `json:"players"`
	TurnOrder    []string               `json:"turn_order"`
	CurrentTurn  int                    `json:"current_turn"`
	ActivePlayer string                 `json:"active_player_id"`
	Phase        Phase                  `json:"phase"`
	BattleLog    []LogEntry             `json:"battle_log"`
	Weather      *WeatherEffect         `json:"weather,omitempty"`
	WinnerID     string                 `json:"winner_id,omitempty"`
	BlockedTiles []Position             `json:"blocked_tiles,omitempty"`
	DiscardPiles map[string][]Card      `json:"discard_piles"`
	// LastDamagedPlayer records the defender of the most recent
	// castle-damaging action; it breaks mutual-destruction ties.
	LastDamagedPlayer string `json:"last_damaged_player_id,omitempty"`
}

// At returns the card at pos, or nil for an empty or off-grid cell.
func (s *BattleState) At(p Position) *BattleCard {
	if !s.Grid.Contains(p) {
		return nil
	}
	return s.Battlefield[p.Row][p.Col]
}

// IsBlocked reports whether the cell is blocked by config.
func (s *BattleState) IsBlocked(p Position) bool {
	for _, b := range s.BlockedTiles {
		if b == p {
			return true
		}
	}
	return false
}

// Opponent returns the id of the other player.
func (s *BattleState) Opponent(playerID string) string {
	for _, id := range s.TurnOrder {
		if id != playerID {
			return id
		}
	}
	return ""
}

// OwnsTopHalf reports whether the player deploys in rows [0, Rows/2).
func (s *BattleState) OwnsTopHalf(playerID string) bool {
	return len(s.TurnOrder) > 0 && s.TurnOrder[0] == playerID
}

// InOwnHalf reports whether pos lies in the player's deployment half.
func (s *BattleState) InOwnHalf(playerID string, p Position) bool {
	half := s.Grid.Rows / 2
	if s.OwnsTopHalf(playerID) {
		return p.Row < half
	}
	return p.Row >= half
}

// FrontRow returns the player's front row: the row of its half adjacent to
// the middle of the grid.
func (s *BattleState) FrontRow(playerID string) int {
	half := s.Grid.Rows / 2
	if s.OwnsTopHalf(playerID) {
		return half - 1
	}
	return half
}

// BackRow returns the row of the player's half furthest from the middle.
func (s *BattleState) BackRow(playerID string) int {
	if s.OwnsTopHalf(playerID) {
		return 0
	}
	return s.Grid.Rows - 1
}

// Cards returns every battlefield card, optionally filtered by owner
// (ownerID == "" yields all).
func (s *BattleState) Cards(ownerID string) []*BattleCard {
	out := make([]*BattleCard, 0, 8)
	for r := range s.Battlefield {
		for c := range s.Battlefield[r] {
			bc := s.Battlefield[r][c]
			if bc == nil {
				continue
			}
			if ownerID == "" || bc.OwnerID == ownerID {
				out = append(out, bc)
			}
		}
	}
	return out
}

// FindCard locates a battlefield card by id.
func (s *BattleState) FindCard(cardID string) *BattleCard {
	for _, bc := range s.Cards("") {
		if bc.ID == cardID {
			return bc
		}
	}
	return nil
}
