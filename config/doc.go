// Package config provides the fetcher's configuration and a stage registry.
//
// Configuration is YAML overlaid on built-in defaults (Default), so an empty
// file, or no file at all, reproduces the stock behaviour. The pipeline section
// references stages by name, optionally with a per-stage timeout:
//
//	pipeline:
//	  name: gb-opcodes
//	  stages:
//	    - name: fetch
//	      timeout: 30s
//	    - decode
//	    - lookup
//	    - render
//
// Build a pipeline with BuildPipeline(registry, &cfg.Pipeline).
package config
