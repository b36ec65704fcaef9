package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/annel0/blockscene/internal/logging"
	"github.com/annel0/blockscene/internal/vec"
	"github.com/annel0/blockscene/internal/world"
)

// Пороги шума для выбора плотности деревьев
const (
	ForestStart   = 0.55 // Выше порога начинается лес
	ForestChance  = 0.35 // Шанс дерева в лесу
	DefaultSpread = 8    // Шаг сетки якорей для дополнительных деревьев
)

// Якоря сцены по умолчанию
var (
	DefaultTreeAnchors = []struct {
		Shape TreeShape
		Base  vec.Vec2
	}{
		{CherryTree1, vec.Vec2{X: -10, Y: -5}},
		{CherryTree2, vec.Vec2{X: 0, Y: -10}},
		{CherryTree3, vec.Vec2{X: 8, Y: 3}},
	}
	DefaultToriiAnchor = vec.Vec2{X: -2, Y: 6}
)

// Config задаёт параметры генерации сцены
type Config struct {
	Seed          int64   // Сид для шума и выбора форм
	ExtraTrees    int     // Сколько деревьев разбросать дополнительно (0 означает только сцену по умолчанию)
	Radius        int     // Радиус области разбрасывания
	NoiseScale    float64 // Масштаб шума
	ForestDensity float64 // Шанс дерева вне леса (от 0 до 1)
	SkipDefaults  bool    // Не ставить деревья и ворота сцены по умолчанию
}

// Report описывает результат генерации
type Report struct {
	Trees      int // Зарегистрировано деревьев
	Structures int // Зарегистрировано построек
	Skipped    int // Отброшено из-за пересечения с занятыми ячейками
	Blocks     int // Всего блоков в мире после генерации
}

// WorldGenerator наполняет мир деревьями и воротами
type WorldGenerator struct {
	cfg    Config
	noise  *Noise
	rng    *rand.Rand
	logger *logging.Logger
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(cfg Config) *WorldGenerator {
	if cfg.Radius <= 0 {
		cfg.Radius = 40
	}
	if cfg.NoiseScale <= 0 {
		cfg.NoiseScale = 0.07 // Нецелые координаты: в целых точках шум Перлина равен нулю
	}
	if cfg.ForestDensity <= 0 {
		cfg.ForestDensity = 0.1
	}

	return &WorldGenerator{
		cfg:    cfg,
		noise:  NewNoise(cfg.Seed),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logging.GetGeneratorLogger(),
	}
}

// PlaceTree строит дерево заданной формы и регистрирует его в мире
func PlaceTree(w *world.World, shape TreeShape, base vec.Vec2) (world.TreeHandle, error) {
	b := shape(base)
	return w.AddTree(b.Blocks(trunk), b.Blocks(leaves))
}

// PlaceTorii строит ворота и регистрирует их в мире
func PlaceTorii(w *world.World, base vec.Vec2) (world.StructureHandle, error) {
	b := Torii(base)
	return w.AddStructure(ToriiName, b.Parts())
}

// Populate строит сцену: три дерева и ворота по умолчанию, затем
// дополнительные деревья в точках, выбранных шумом Перлина.
func (wg *WorldGenerator) Populate(w *world.World) (Report, error) {
	var report Report

	if !wg.cfg.SkipDefaults {
		for _, a := range DefaultTreeAnchors {
			if _, err := PlaceTree(w, a.Shape, a.Base); err != nil {
				return report, fmt.Errorf("дерево в (%d,%d): %w", a.Base.X, a.Base.Y, err)
			}
			report.Trees++
		}
		if _, err := PlaceTorii(w, DefaultToriiAnchor); err != nil {
			return report, fmt.Errorf("тории в (%d,%d): %w", DefaultToriiAnchor.X, DefaultToriiAnchor.Y, err)
		}
		report.Structures++
	}

	for _, base := range wg.scatterAnchors() {
		if report.Trees-wg.defaultTrees() >= wg.cfg.ExtraTrees {
			break
		}

		shape := CherryTrees[wg.rng.Intn(len(CherryTrees))]
		if _, err := PlaceTree(w, shape, base); err != nil {
			if errors.Is(err, world.ErrAlreadyOccupied) {
				report.Skipped++
				wg.logger.Debug("Дерево в (%d,%d) пропущено: %v", base.X, base.Y, err)
				continue
			}
			return report, err
		}
		report.Trees++
	}

	if report.Skipped > 0 {
		wg.logger.Warn("Пропущено деревьев из-за пересечений: %d", report.Skipped)
	}

	report.Blocks = w.Count()
	wg.logger.Info("Мир сгенерирован: деревьев=%d построек=%d блоков=%d", report.Trees, report.Structures, report.Blocks)
	return report, nil
}

func (wg *WorldGenerator) defaultTrees() int {
	if wg.cfg.SkipDefaults {
		return 0
	}
	return len(DefaultTreeAnchors)
}

// scatterAnchors перебирает узлы сетки в радиусе и оставляет те,
// где шум и случайный бросок разрешают дерево
func (wg *WorldGenerator) scatterAnchors() []vec.Vec2 {
	if wg.cfg.ExtraTrees <= 0 {
		return nil
	}

	var anchors []vec.Vec2
	r := wg.cfg.Radius
	for z := -r; z <= r; z += DefaultSpread {
		for x := -r; x <= r; x += DefaultSpread {
			// Небольшой сдвиг внутри узла, чтобы деревья не стояли строем
			base := vec.Vec2{X: x + wg.rng.Intn(3) - 1, Y: z + wg.rng.Intn(3) - 1}

			density := wg.noise.At(float64(base.X)*wg.cfg.NoiseScale, float64(base.Y)*wg.cfg.NoiseScale)
			chance := wg.cfg.ForestDensity
			if density > ForestStart {
				chance = ForestChance
			}
			if wg.rng.Float64() < chance {
				anchors = append(anchors, base)
			}
		}
	}
	return anchors
}
