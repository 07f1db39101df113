package engine

import (
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
)

// Типы снимков.
const (
	SnapshotInit   = "INIT"
	SnapshotUpdate = "UPDATE"
)

// Snapshot собирает снимок сессии для клиента и забирает накопленные
// логи и звуки. Карта передаётся только в INIT.
func (s *Session) Snapshot(kind string) api.ServerResponse {
	resp := api.ServerResponse{
		Type:       kind,
		Tick:       s.tick,
		MyEntityID: s.hero.ID.String(),
		Grid:       &api.GridMeta{Width: s.level.Width, Height: s.level.Height},
		Entities:   make([]api.EntityView, 0, len(s.entities)),
		Avatar:     s.avatarView(),
		Combat:     s.combatView(),
		ActionBar:  s.barView(),
		Logs:       s.TakeLogs(),
		Sounds:     s.TakeSounds(),
	}
	if kind == SnapshotInit {
		resp.Map = s.mapView()
	}
	for _, e := range s.entities {
		resp.Entities = append(resp.Entities, toEntityView(e))
	}
	return resp
}

func (s *Session) mapView() []api.TileView {
	var tiles []api.TileView
	for y := 0; y < s.level.Height; y++ {
		for x := 0; x < s.level.Width; x++ {
			kind := ""
			switch s.level.TileAt(x, y) {
			case systems.TileWall:
				kind = "WALL"
			case systems.TilePit:
				kind = "PIT"
			default:
				continue
			}
			tiles = append(tiles, api.TileView{X: x, Y: y, Kind: kind})
		}
	}
	return tiles
}

func toPointView(p domain.FPoint) api.PointView {
	return api.PointView{X: p.X, Y: p.Y}
}

// toEntityView конвертирует доменную сущность в DTO для отправки клиенту.
func toEntityView(e *domain.Entity) api.EntityView {
	st := e.Stats
	return api.EntityView{
		ID:        e.ID.String(),
		Type:      e.Type.String(),
		Name:      st.Name,
		Pos:       toPointView(st.Pos),
		Direction: st.Direction,
		State:     st.CurState.String(),
		InCombat:  st.InCombat(),
		Corpse:    st.Corpse,
		Stats: &api.StatsView{
			HP:     st.HP,
			MaxHP:  st.MaxHP,
			MP:     st.MP,
			MaxMP:  st.MaxMP,
			IsDead: !st.IsAlive(),
		},
	}
}

func (s *Session) avatarView() *api.AvatarView {
	av := s.Avatar
	view := &api.AvatarView{
		State:  av.State().String(),
		Power:  uint32(av.CurrentPower()),
		Target: toPointView(av.Target()),
	}
	for _, p := range av.Path() {
		view.Path = append(view.Path, toPointView(p))
	}
	if lock := av.LockEnemy(); lock != nil {
		view.LockEnemyID = lock.ID.String()
	}
	return view
}

func (s *Session) combatView() *api.CombatView {
	c := s.Combat
	view := &api.CombatView{State: c.State().String()}
	if c.State() != enums.CombatActive {
		return view
	}

	turn := c.TurnState()
	start := toPointView(turn.MovementStart)
	view.Round = c.CurrentRound()
	view.ActionsRemaining = turn.ActionsRemaining
	view.MovementRange = c.MovementRange()
	view.MovementStart = &start
	if cur := c.CurrentTurnEntity(); cur != nil {
		view.ActiveEntityID = cur.ID.String()
	}
	for _, in := range c.InitiativeOrder() {
		view.Order = append(view.Order, api.InitiativeView{
			ID:   in.Entity.ID.String(),
			Name: in.Entity.Stats.Name,
			Roll: in.Roll,
		})
	}
	return view
}

func (s *Session) barView() *api.ActionBarView {
	slots := s.Bar.Slots()
	view := &api.ActionBarView{
		Slots:          make([]api.SlotView, 0, len(slots)),
		EndTurnVisible: s.Bar.EndTurnVisible(),
	}
	for _, sl := range slots {
		view.Slots = append(view.Slots, api.SlotView{
			Power:    uint32(sl.Power),
			Enabled:  sl.Enabled,
			Cooldown: sl.Cooldown,
		})
	}
	return view
}

// AvatarDebug - внутреннее состояние управления аватаром для отладочного API.
func (s *Session) AvatarDebug() map[string]interface{} {
	av := s.Avatar
	out := map[string]interface{}{
		"tick":            s.tick,
		"state":           av.State().String(),
		"power":           av.CurrentPower(),
		"target":          av.Target(),
		"movement_target": av.MovementTarget(),
		"desired_target":  av.DesiredTarget(),
		"path":            av.Path(),
		"collided":        av.Collided(),
		"near_target":     av.IsNearTarget(),
		"using_main1":     av.UsingMain1(),
		"using_main2":     av.UsingMain2(),
		"restrict_powers": av.RestrictPowerUse(),
		"queued_frames":   len(s.frames),
		"hero_pos":        s.hero.Stats.Pos,
		"hero_in_combat":  s.hero.Stats.InCombat(),
		"hero_animation":  "",
		"mouse_move_key":  av.MouseMoveKey(),
		"replan_chance":   av.Replanner().Chance(),
		"replan_fails":    av.Replanner().Fails(),
		"replan_attempts": av.Replanner().Attempts(),
		"replan_cooldown": av.Replanner().CoolingDown(),
		"game_over":       s.gameOver,
	}
	if a := av.Animation(); a != nil {
		out["hero_animation"] = a.Name()
	}
	if lock := av.LockEnemy(); lock != nil {
		out["lock_enemy"] = lock.ID
	}
	return out
}
