/*
Package editor contains the session model of the piano roll editor.

The Model struct holds one editing session: the document being edited, the
view state (zoom, scroll, snapping and the active tool), the note selection,
the pointer interaction state, the playback transport and the undo history.

The GUI does not modify the Model data directly. The methods are grouped into
views of the model by functionality, e.g. model.View() for zooming and
scrolling, model.Selection() for selecting notes and model.Edit() for changing
the document. Things the user can trigger from a button or a key binding are
also exposed as Action, Bool, Int and String values, e.g.
model.View().ZoomInAction(editor.Horizontal).Do() or
model.View().Snap().Toggle().

Every change to the document installs a new copy of it, so a Snapshot taken
before the change keeps seeing the document as it was. The renderer reads a
Snapshot on every frame; Subscribe notifies listeners after each change.
*/
package editor
