//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/sketchboard/internal/camera"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/geom"
)

var eng *engine.Engine

func main() {
	eng = engine.New()

	// Create the engine API object
	board := js.Global().Get("Object").New()

	// --- Events (frontend → engine) ---
	board.Set("pointerDown", js.FuncOf(pointerDown))
	board.Set("pointerMove", js.FuncOf(pointerMove))
	board.Set("pointerUp", js.FuncOf(pointerUp))
	board.Set("pointerLeave", js.FuncOf(pointerLeave))
	board.Set("wheel", js.FuncOf(wheel))
	board.Set("commitText", js.FuncOf(commitText))
	board.Set("setTool", js.FuncOf(setTool))
	board.Set("adjustZoom", js.FuncOf(adjustZoom))
	board.Set("insertImage", js.FuncOf(insertImage))
	board.Set("clear", js.FuncOf(clearBoard))

	// --- Queries (frontend ← engine) ---
	board.Set("render", js.FuncOf(render))
	board.Set("hitTest", js.FuncOf(hitTest))
	board.Set("getState", js.FuncOf(getState))
	board.Set("getCursor", js.FuncOf(getCursor))
	board.Set("getTextEditor", js.FuncOf(getTextEditor))
	board.Set("measureTextInput", js.FuncOf(measureTextInput))
	board.Set("getElements", js.FuncOf(getElements))

	// Register on global scope
	js.Global().Set("sketchboard", board)

	// Signal that WASM is ready
	js.Global().Set("sketchboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func toJSON(v any) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return result(err)
	}
	return js.ValueOf(string(data))
}

// pointerEvent reads (x, y[, button]).
func pointerEvent(args []js.Value) (engine.PointerEvent, bool) {
	if len(args) < 2 {
		return engine.PointerEvent{}, false
	}
	ev := engine.PointerEvent{X: args[0].Float(), Y: args[1].Float()}
	if len(args) > 2 {
		ev.Button = engine.Button(args[2].Int())
	}
	return ev, true
}

// --- Event Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	return result(eng.PointerDown(ev))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	return result(eng.PointerMove(ev))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ev, ok := pointerEvent(args)
	if !ok {
		return nil
	}
	return result(eng.PointerUp(ev))
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	eng.PointerLeave()
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	return result(eng.Wheel(engine.WheelEvent{DeltaY: args[0].Float()}))
}

func commitText(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing text or scroll height"})
	}
	return result(eng.CommitText(args[0].String(), args[1].Float()))
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	tool, err := engine.ParseTool(args[0].String())
	if err != nil {
		return result(err)
	}
	return result(eng.SetTool(tool))
}

// adjustZoom(mode, value[, centerX, centerY])
func adjustZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	var center *geom.Point
	if len(args) > 3 {
		c := geom.Pt(args[2].Float(), args[3].Float())
		center = &c
	}
	return result(eng.AdjustZoom(camera.ZoomMode(args[0].String()), args[1].Float(), center))
}

func insertImage(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	el, err := eng.InsertImage(args[0].String(), args[1].Float(), args[2].Float())
	if err != nil {
		return result(err)
	}
	return js.ValueOf(el.ID)
}

func clearBoard(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("[]")
	}
	out, _ := eng.RenderJSON(args[0].Float(), args[1].Float())
	return js.ValueOf(out)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	el, ok, err := eng.HitTest(geom.Pt(args[0].Float(), args[1].Float()))
	if err != nil || !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(el.ID)
}

func getState(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.State())
}

func getCursor(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(string(eng.Cursor()))
}

func getTextEditor(this js.Value, args []js.Value) interface{} {
	ed, ok := eng.TextEditor()
	if !ok {
		return js.Null()
	}
	return toJSON(ed)
}

func measureTextInput(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	m, err := eng.MeasureTextInput(args[0].String())
	if err != nil {
		return result(err)
	}
	return toJSON(m)
}

func getElements(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Elements())
}
