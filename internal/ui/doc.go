// Package ui contains the Bubble Tea program that hosts the widget gallery:
// a nested filter menu, a tag combobox, a directory browser and an inline
// details panel. The Model type focuses on message orchestration, while
// dedicated helpers own focus, pointer input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (for example, navigation for key presses or backend updates).
//   - Mouse presses are resolved against the regions marked during the last
//     View into an innermost-first path. The path goes to the overlay
//     Document first, so open overlays can dismiss themselves, and only then
//     to the widget that was hit (internal/ui/input.go).
//   - Keys go to whichever overlay is open, then to the focused widget
//     (internal/ui/navigation.go).
//
// State ownership:
//   - Widgets never own the records they edit. Tag selection lives in
//     internal/state and is changed only by the dispatcher in response to
//     widget events; the combobox is then handed fresh items.
//   - Directory listings are requested by the browser and fetched through the
//     internal/ui/command bus, so provider I/O never blocks Update.
//
// Backend interactions:
//   - An optional backend.Watcher re-lists the directory the browser shows.
//     Update waits for those events and hands them to applyBackendEvent,
//     which refreshes the browser when the listing changed.
package ui
