package lcdkit

// ButtonContext carries a button press or release.
type ButtonContext struct {
	// Component is the component the event is delivered to; nil for
	// frame-level handlers.
	Component *Component
	Button    Button
	Pressed   bool
	// Mask is the full button state after the change.
	Mask ButtonMask
}

// --- Handler registry ---

type buttonHandler struct {
	id uint32
	fn func(ButtonContext)
}

type handlerRegistry struct {
	buttonDown []buttonHandler
	buttonUp   []buttonHandler
	nextID     uint32
}

// CallbackHandle allows removing a registered frame-level callback.
type CallbackHandle struct {
	id      uint32
	reg     *handlerRegistry
	pressed bool
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.pressed {
		h.reg.buttonDown = removeButtonHandler(h.reg.buttonDown, h.id)
	} else {
		h.reg.buttonUp = removeButtonHandler(h.reg.buttonUp, h.id)
	}
}

func removeButtonHandler(s []buttonHandler, id uint32) []buttonHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = buttonHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(pressed bool, fn func(ButtonContext)) CallbackHandle {
	r.nextID++
	h := buttonHandler{id: r.nextID, fn: fn}
	if pressed {
		r.buttonDown = append(r.buttonDown, h)
	} else {
		r.buttonUp = append(r.buttonUp, h)
	}
	return CallbackHandle{id: h.id, reg: r, pressed: pressed}
}

// --- Frame-level event registration ---

// OnButtonDown registers a frame-level callback for button presses. It runs
// before the event is dispatched into the component tree.
func (f *Frame) OnButtonDown(fn func(ButtonContext)) CallbackHandle {
	return f.handlers.add(true, fn)
}

// OnButtonUp registers a frame-level callback for button releases.
func (f *Frame) OnButtonUp(fn func(ButtonContext)) CallbackHandle {
	return f.handlers.add(false, fn)
}

// processButtons compares mask against the previous state and emits one
// event per changed button, in ascending button order.
func (f *Frame) processButtons(mask ButtonMask) {
	changed := mask ^ f.buttons
	f.buttons = mask
	if changed == 0 {
		return
	}
	for b := Button(0); b < MaxButtons; b++ {
		if !changed.Has(b) {
			continue
		}
		ctx := ButtonContext{Button: b, Pressed: mask.Has(b), Mask: mask}
		f.fireButton(ctx)
	}
}

func (f *Frame) fireButton(ctx ButtonContext) {
	handlers := f.handlers.buttonUp
	if ctx.Pressed {
		handlers = f.handlers.buttonDown
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	if f.logger != nil && f.debug {
		f.logger.Debug("button", "button", ctx.Button, "pressed", ctx.Pressed, "mask", ctx.Mask)
	}
	dispatchButton(f.root, ctx)
}

// dispatchButton delivers ctx to c and then to its visible children in
// drawing order. A tab control consumes its navigation buttons and forwards
// everything else to its active page only.
func dispatchButton(c *Component, ctx ButtonContext) {
	if c == nil || c.disposed || !c.visible {
		return
	}
	ctx.Component = c
	if ctx.Pressed {
		if c.OnButtonDown != nil {
			c.OnButtonDown(ctx)
		}
	} else if c.OnButtonUp != nil {
		c.OnButtonUp(ctx)
	}
	if c.disposed {
		return
	}
	if c.tabs != nil {
		if c.handleNavigation(ctx) {
			return
		}
		if p := c.ActivePage(); p != nil {
			dispatchButton(p, ctx)
		}
		return
	}
	// Handlers may reshape the tree; iterate over a copy.
	children := append([]*Component(nil), c.children...)
	for _, child := range children {
		if child.parent == c {
			dispatchButton(child, ctx)
		}
	}
}
