package innerscope

// FrameEvent describes a function frame that has just finished.
type FrameEvent struct {
	ID       FrameID
	Function *ScriptFunction
	Env      *Env
	Result   Value
	Err      error
}

// FrameObserver receives the exit event of the one frame it was installed
// for.
type FrameObserver func(FrameEvent)

func (exec *Execution) allocFrame() FrameID {
	exec.nextFrame++
	return exec.nextFrame
}

func (exec *Execution) pushFrame(id FrameID, function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{ID: id, Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// observeFrame installs fn for frame id until the returned release func runs.
func (exec *Execution) observeFrame(id FrameID, fn FrameObserver) func() {
	if exec.observers == nil {
		exec.observers = make(map[FrameID]FrameObserver)
	}
	exec.observers[id] = fn
	return func() {
		delete(exec.observers, id)
	}
}

func (exec *Execution) notifyFrame(event FrameEvent) {
	if len(exec.observers) == 0 {
		return
	}
	if fn, ok := exec.observers[event.ID]; ok {
		fn(event)
	}
}
