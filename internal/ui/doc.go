// Package ui runs boot menus: the generic run loop, the render strategies
// it drives, and the main-menu flow built on top of them.
//
// Run flow:
//   - Run pairs a menu.Screen with a Style and a state.Scroll. It asks the
//     style to lay the screen out (OpInit), finds the row boundaries, then
//     loops: paint what the scroll state marks dirty, repaint the countdown
//     when its whole-second value changes, and poll for a key.
//   - With no key pending the loop either counts the timeout down one Tick,
//     advances the screensaver idle counter, or blocks on the input source.
//     The first key cancels the countdown.
//   - Keys become scroll movements, exits (Enter, Escape, Details), or a
//     shortcut lookup through menu.FindShortcut.
//
// Strategies:
//   - TextStyle draws on a display.Console. PaintSelection touches only the
//     previous and current rows.
//   - GraphicsStyle draws sub-menus as a centered window on a
//     display.Canvas.
//   - MainMenuStyle draws the two-row icon layout, with scroll arrows when
//     row 0 does not fit. PaintSelection recomposes only the two affected
//     tiles while the selection stays visible.
//
// SelectStyles chooses the strategies once, from whether a canvas is
// available; nothing else in the package depends on which one is active.
//
// RunMainMenu layers the sub-screen and option-editor flow over Run. The
// Editor interface is implemented here by LineEditor and, for terminals, by
// internal/terminal.
package ui
