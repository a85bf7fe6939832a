// Package fraud 實現交易風控偵測。
//
// 各偵測器獨立評分，服務取最高分作為整體風險分數。
package fraud

// 風險分數門檻
const (
	suspiciousThreshold = 0.5
	blockThreshold      = 0.8
)

// RiskLevel 風險等級
type RiskLevel string

const (
	RiskNegligible RiskLevel = "negligible"
	RiskLow        RiskLevel = "low"
	RiskMedium     RiskLevel = "medium"
	RiskHigh       RiskLevel = "high"
)

// Result 風控分析結果
//
// Score 範圍 [0, 1]，超過 0.5 視為可疑，超過 0.8 應攔截。
type Result struct {
	score           float64
	reasons         []string
	detectorResults []Result
}

// NewResult 創建風控分析結果
func NewResult(score float64, reasons []string) Result {
	return Result{
		score:   score,
		reasons: reasons,
	}
}

// newAggregateResult 創建彙總結果（保留各偵測器的子結果）
func newAggregateResult(score float64, reasons []string, detectorResults []Result) Result {
	return Result{
		score:           score,
		reasons:         reasons,
		detectorResults: detectorResults,
	}
}

// Score 獲取風險分數
func (r Result) Score() float64 {
	return r.score
}

// Reasons 獲取風險原因
func (r Result) Reasons() []string {
	return append([]string{}, r.reasons...)
}

// DetectorResults 獲取各偵測器的子結果（僅彙總結果有值）
func (r Result) DetectorResults() []Result {
	return append([]Result{}, r.detectorResults...)
}

// IsSuspicious 判斷是否可疑
func (r Result) IsSuspicious() bool {
	return r.score >= suspiciousThreshold
}

// ShouldBlock 判斷是否應攔截
func (r Result) ShouldBlock() bool {
	return r.score >= blockThreshold
}

// Level 獲取風險等級
func (r Result) Level() RiskLevel {
	switch {
	case r.score >= 0.8:
		return RiskHigh
	case r.score >= 0.5:
		return RiskMedium
	case r.score >= 0.2:
		return RiskLow
	default:
		return RiskNegligible
	}
}
