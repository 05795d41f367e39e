// Package loader reads Lua world templates into the raw world payload.
// Templates are data-only scripts: a sandboxed VM executes them once to
// collect definitions and is discarded before the game starts.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/Acolyte-Luu/jp-mud/world"
)

// collector accumulates Lua definitions during template execution.
type collector struct {
	locations  []rawDef
	characters []rawDef
	items      []rawDef
	vocabulary []rawDef
	quests     []rawDef
}

// rawDef holds one id-keyed Lua table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// Load executes every .lua file in dir (world.lua first, the rest
// alphabetical) and compiles the collected definitions into a raw world
// payload ready for world.Build.
func Load(dir string) (world.Raw, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return world.Raw{}, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return world.Raw{}, fmt.Errorf("no .lua files found in %s", dir)
	}
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return world.Raw{}, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	raw, err := compile(coll)
	if err != nil {
		return world.Raw{}, fmt.Errorf("compiling world template: %w", err)
	}
	return raw, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that could touch the host.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// sortedLuaFiles puts world.lua first and the rest in alphabetical order.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}
