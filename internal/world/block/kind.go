package block

// Kind определяет категорию блока в хранилище занятости
type Kind uint8

const (
	KindFree      Kind = iota // Свободно стоящий блок, поставленный игроком
	KindTrunk                 // Блок ствола дерева
	KindLeaf                  // Блок листвы дерева
	KindStructure             // Часть декоративной постройки (ворота)
)

// String возвращает строковое представление категории
func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindTrunk:
		return "trunk"
	case KindLeaf:
		return "leaf"
	case KindStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Part называет упорядоченную последовательность блоков внутри сущности
type Part string

// Части дерева
const (
	PartTrunk  Part = "trunk"
	PartLeaves Part = "leaves"
)

// Части ворот-тории
const (
	PartFeet       Part = "feet"
	PartPillars    Part = "pillars"
	PartCrossbeams Part = "crossbeams"
	PartRoof       Part = "roof"
)

// PartNone используется для свободно стоящих блоков
const PartNone Part = ""

// TreeParts: порядок обхода частей дерева при запросах
var TreeParts = []Part{PartTrunk, PartLeaves}

// StructureParts: порядок обхода частей постройки при запросах
var StructureParts = []Part{PartFeet, PartPillars, PartCrossbeams, PartRoof}

// KindOf возвращает категорию блока для части сущности
func KindOf(p Part) Kind {
	switch p {
	case PartNone:
		return KindFree
	case PartTrunk:
		return KindTrunk
	case PartLeaves:
		return KindLeaf
	default:
		return KindStructure
	}
}

// IsTreePart проверяет, принадлежит ли часть дереву
func IsTreePart(p Part) bool {
	return p == PartTrunk || p == PartLeaves
}

// IsStructurePart проверяет, принадлежит ли часть постройке
func IsStructurePart(p Part) bool {
	for _, sp := range StructureParts {
		if sp == p {
			return true
		}
	}
	return false
}
