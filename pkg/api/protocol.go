package api

// --- СЕРВЕР -> КЛИЕНТ ---

// Snapshot это корневой объект, который сервер отправляет зрителям.
// Он представляет собой полный "снимок" того, что видит игрок после тика.
// Snapshots are immutable once published; the scheduler builds a fresh one
// every tick.
type Snapshot struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// RunID identifies the game run (uuid).
	RunID string `json:"runId"`

	// Tick номер тика, после которого сделан снимок.
	Tick int `json:"tick"`

	// MyEntityID handle игрока, чьими глазами сделан снимок.
	MyEntityID string `json:"myEntityId"`

	// State RunState после тика: pre, waiting, player, monster, game_over.
	State string `json:"state"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map"`

	// Entities срез сущностей на видимых тайлах.
	Entities []EntityView `json:"entities"`

	// Player статы игрока. nil после смерти.
	Player *StatsView `json:"player,omitempty"`

	// Logs последние сообщения игрового лога.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// IsWall true, если тайл является стеной.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	// Если IsVisible=false, а IsExplored=true, рендерится тускло.
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Glyph string `json:"glyph"`
		FG    string `json:"fg"`
		BG    string `json:"bg"`
	} `json:"render"`

	// Stats характеристики сущности, если у неё есть CombatStats.
	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView это DTO для характеристик сущности.
type StatsView struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	Tick int    `json:"tick"`
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, DEATH, AI
}

// --- Payloads ---

// DirectionPayload описывает шаг (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}
