package wechat

import "encoding/json"

// StepInfo is one day of step data inside a decrypted WeRun payload.
type StepInfo struct {
	Timestamp int64 `json:"timestamp"`
	Step      int   `json:"step"`
}

// WeRunData is the decrypted WeRun payload: a time-ordered list of daily step
// entries, oldest first.
type WeRunData struct {
	StepInfoList []StepInfo `json:"stepInfoList"`
}

// ParseWeRunData parses a decrypted WeRun JSON payload.
func ParseWeRunData(plaintext []byte) (*WeRunData, error) {
	var data WeRunData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Latest returns the most recent entry, which the vendor orders last.
func (d *WeRunData) Latest() (StepInfo, bool) {
	if len(d.StepInfoList) == 0 {
		return StepInfo{}, false
	}
	return d.StepInfoList[len(d.StepInfoList)-1], true
}
