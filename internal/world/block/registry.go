package block

// Material идентифицирует текстуру или цвет, которым рендерер рисует куб
type Material uint16

// Константы материалов
const (
	MaterialNone Material = iota // 0
	// Текстуры
	MaterialCobblestone // 1 - Свободно стоящие блоки
	MaterialLog         // 2 - Ствол
	MaterialLeaf        // 3 - Листва
	MaterialSky         // 4 - Кубическая карта неба

	// Цветные материалы (начиная с 100)
	MaterialBlack Material = 100 // Основания и крыша тории
	MaterialRed   Material = 101 // Столбы и перекладины тории
	MaterialGrass Material = 102 // Плоскость земли
)

var materialNames = map[Material]string{
	MaterialNone:        "none",
	MaterialCobblestone: "cobblestone",
	MaterialLog:         "log",
	MaterialLeaf:        "leaf",
	MaterialSky:         "sky",
	MaterialBlack:       "black",
	MaterialRed:         "red",
	MaterialGrass:       "grass",
}

// String возвращает имя материала
func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return "unknown"
}

var registry = map[Part]Material{
	PartNone:       MaterialCobblestone,
	PartTrunk:      MaterialLog,
	PartLeaves:     MaterialLeaf,
	PartFeet:       MaterialBlack,
	PartPillars:    MaterialRed,
	PartCrossbeams: MaterialRed,
	PartRoof:       MaterialBlack,
}

// Register назначает материал части сущности
func Register(part Part, material Material) {
	registry[part] = material
}

// MaterialFor возвращает материал для части сущности
func MaterialFor(part Part) Material {
	if m, exists := registry[part]; exists {
		return m
	}
	return MaterialNone
}

// IsValidMaterial проверяет, известен ли материал
func IsValidMaterial(m Material) bool {
	_, exists := materialNames[m]
	return exists && m != MaterialNone
}
