package innerscope

// runObserved runs fn unmodified as a fresh frame in env and copies the
// frame's bindings when that frame, and only that frame, exits.
func (exec *Execution) runObserved(fn *ScriptFunction, env *Env, pos Position) (*frameExport, error) {
	id := exec.allocFrame()
	var captured *frameExport
	release := exec.observeFrame(id, func(ev FrameEvent) {
		if ev.Err != nil {
			return
		}
		names, values := ev.Env.snapshot()
		captured = &frameExport{names: names, values: values, result: ev.Result}
	})
	defer release()

	if _, err := exec.runFrame(fn, id, env, pos); err != nil {
		return nil, err
	}
	if captured == nil {
		return nil, ErrFrameNotObserved
	}
	return captured, nil
}
