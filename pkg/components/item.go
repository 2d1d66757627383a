package components

// ItemKind 道具类型
type ItemKind int

const (
	ItemStick ItemKind = iota
	ItemSalt
	ItemCharm
	itemKindCount
)

// ItemKindCount 道具种类数
const ItemKindCount = int(itemKindCount)

// String 返回道具名称
func (k ItemKind) String() string {
	switch k {
	case ItemStick:
		return "stick"
	case ItemSalt:
		return "salt"
	case ItemCharm:
		return "charm"
	}
	return "unknown"
}

// ItemComponent 道具状态
type ItemComponent struct {
	Kind      ItemKind
	Collected bool
	// Resting 已落到悬浮高度，开始上下漂浮
	Resting bool
	// RestY 悬浮中心Y坐标
	RestY float64
}

// FloatComponent 上下漂浮（正弦）
type FloatComponent struct {
	BaseY        float64
	Amplitude    float64
	HalfPeriodMs float64
	ElapsedMs    float64
}
