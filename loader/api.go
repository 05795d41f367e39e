package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the template constructors as Lua globals. All
// entity constructors are curried: Location "id" { ... }.
func registerAPI(L *lua.LState, coll *collector) {
	curried := func(sink *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	L.SetGlobal("Location", curried(&coll.locations))
	L.SetGlobal("Character", curried(&coll.characters))
	L.SetGlobal("Item", curried(&coll.items))
	L.SetGlobal("Vocab", curried(&coll.vocabulary))
	L.SetGlobal("Quest", curried(&coll.quests))

	// Word { japanese = "...", english = "...", reading = "..." } is a
	// pass-through that keeps vocabulary attachments readable.
	L.SetGlobal("Word", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		L.Push(tbl)
		return 1
	}))

	// Line { response = "...", japanese_response = "..." } is the same
	// pass-through for dialogue entries.
	L.SetGlobal("Line", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		L.Push(tbl)
		return 1
	}))
}
