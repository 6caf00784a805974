package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/renderable"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	uniforms := flag.Bool("uniforms", false, "Print the packed uniform block size per node")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: renderable-inspect [-debug] [-uniforms] scene.yaml")
		os.Exit(2)
	}

	def, err := renderable.LoadSceneDef(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debug {
		def.Logging.Debug = true
	}

	scene, err := def.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := scene.Logger

	// Degenerate nodes are logged and reported but don't stop the dump.
	recomputeErr := scene.Recompute()

	unit := [2]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, 0.5, 0.5}}
	for _, n := range scene.Nodes {
		prog := "none"
		if p, ok := scene.Programs.Lookup(n.Program()); ok {
			prog = p.Name
		}
		log.Infof("node %s id=%s program=%s stale=%v", n.Name(), n.ID(), prog, n.ModelStale())
		log.Infof("  model=%v", n.Model())
		if mvp, ok := n.MVP().Get(); ok {
			log.Infof("  mvp=%v", mvp)
		} else {
			log.Infof("  mvp=absent")
		}
		log.Infof("  visible=%v", renderable.Visible(n, unit[0], unit[1]))

		if *uniforms {
			u, err := renderable.CollectUniforms(n)
			if err != nil {
				log.Warnf("  uniforms: %v", err)
				continue
			}
			log.Infof("  uniforms=%d bytes", len(u.Bytes()))
		}
	}

	if recomputeErr != nil {
		log.Errorf("%v", recomputeErr)
		os.Exit(1)
	}
}
