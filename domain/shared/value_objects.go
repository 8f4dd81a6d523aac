package shared

import (
	"github.com/shopspring/decimal"
)

// MoneyScale 展示金额保留的小数位
const MoneyScale = 2

// Money 值对象 - 表示金额
// 内部保留输入精度，展示与汇总时按 MoneyScale 截断（不做四舍五入）
type Money struct {
	amount decimal.Decimal
}

// NewMoney 创建新的 Money 值对象
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// ParseMoney 从字符串解析金额
func ParseMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, NewValidationError("money", "amount", "invalid amount: "+value)
	}
	return Money{amount: d}, nil
}

// ZeroMoney 零金额
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount 获取金额数量
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add 金额相加，返回新的 Money
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times 单价乘以数量
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Truncated 截断到两位小数
func (m Money) Truncated() Money {
	return Money{amount: m.amount.Truncate(MoneyScale)}
}

// IsPositive 金额是否大于零
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equals 比较两个 Money 是否相等（按数值，不按精度）
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String 截断后固定两位小数，如 "142.89"、"0.00"
func (m Money) String() string {
	return m.amount.Truncate(MoneyScale).StringFixed(MoneyScale)
}
