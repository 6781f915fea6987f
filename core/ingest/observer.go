package ingest

import "go.uber.org/zap"

// Observer receives progress notifications. It has no effect on the pass.
type Observer interface {
	OnPassStart(staged int)
	OnBatchStart(op Operation, index, size int)
	OnBatchResult(op Operation, index int, success bool, count int, err error)
	OnItem(label string)
	OnPassEnd(result *PassResult)
}

// NopObserver ignores every notification. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) OnPassStart(int)                                {}
func (NopObserver) OnBatchStart(Operation, int, int)               {}
func (NopObserver) OnBatchResult(Operation, int, bool, int, error) {}
func (NopObserver) OnItem(string)                                  {}
func (NopObserver) OnPassEnd(*PassResult)                          {}

// LogObserver writes notifications to a zap logger.
type LogObserver struct {
	Logger *zap.Logger
}

func (o LogObserver) OnPassStart(staged int) {
	o.Logger.Info("Sync pass started", zap.Int("staged", staged))
}

func (o LogObserver) OnBatchStart(op Operation, index, size int) {
	o.Logger.Debug("Sending batch", zap.String("op", string(op)), zap.Int("batch", index), zap.Int("size", size))
}

func (o LogObserver) OnBatchResult(op Operation, index int, success bool, count int, err error) {
	if success {
		o.Logger.Info("Batch succeeded", zap.String("op", string(op)), zap.Int("batch", index), zap.Int("count", count))
		return
	}
	o.Logger.Warn("Batch failed", zap.String("op", string(op)), zap.Int("batch", index), zap.Int("count", count), zap.Error(err))
}

func (o LogObserver) OnItem(label string) {
	o.Logger.Debug("Item", zap.String("label", label))
}

func (o LogObserver) OnPassEnd(result *PassResult) {
	o.Logger.Info("Sync pass finished",
		zap.String("pass_id", result.PassID),
		zap.String("source", result.Source),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("waited", result.Waited),
		zap.Int("failed", result.Failed),
		zap.Duration("took", result.Duration()),
	)
}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnPassStart(staged int) {
	for _, o := range m {
		o.OnPassStart(staged)
	}
}

func (m MultiObserver) OnBatchStart(op Operation, index, size int) {
	for _, o := range m {
		o.OnBatchStart(op, index, size)
	}
}

func (m MultiObserver) OnBatchResult(op Operation, index int, success bool, count int, err error) {
	for _, o := range m {
		o.OnBatchResult(op, index, success, count, err)
	}
}

func (m MultiObserver) OnItem(label string) {
	for _, o := range m {
		o.OnItem(label)
	}
}

func (m MultiObserver) OnPassEnd(result *PassResult) {
	for _, o := range m {
		o.OnPassEnd(result)
	}
}
