/*
Copyright © 2018 the MapGeom authors.
This file is part of MapGeom.

MapGeom is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MapGeom is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MapGeom.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command mapgeom is a command-line interface for working with the
// vector geometry files used by the spatialmodel mapping tools.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/mapgeom/mapgeomutil"
)

func main() {
	if err := mapgeomutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
