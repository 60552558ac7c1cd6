package lcdkit

// InjectPress queues a synthetic press of b. Each queued state replaces the
// driver's button poll for one Tick.
func (f *Frame) InjectPress(b Button) {
	f.injectState |= b.Mask()
	f.injectQueue = append(f.injectQueue, f.injectState)
}

// InjectRelease queues a synthetic release of b.
func (f *Frame) InjectRelease(b Button) {
	f.injectState &^= b.Mask()
	f.injectQueue = append(f.injectQueue, f.injectState)
}

// InjectClick is a convenience that queues a press followed by a release of
// b. Consumes two ticks.
func (f *Frame) InjectClick(b Button) {
	f.InjectPress(b)
	f.InjectRelease(b)
}

// nextInjected pops the next queued button state. It reports false when the
// queue is empty and the driver should be polled instead.
func (f *Frame) nextInjected() (ButtonMask, bool) {
	if len(f.injectQueue) == 0 {
		return 0, false
	}
	m := f.injectQueue[0]
	copy(f.injectQueue, f.injectQueue[1:])
	f.injectQueue = f.injectQueue[:len(f.injectQueue)-1]
	return m, true
}
