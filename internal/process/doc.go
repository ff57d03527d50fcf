// Package process starts external tools in their own process group so a
// cancelled run can take down the whole tree (pdflatex spawns helpers such as
// mktexpk; Chrome spawns renderer processes).
package process
