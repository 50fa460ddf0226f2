// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package campusmate answers Korean natural-language questions about a
// personal schedule and university announcements.
//
// Exact field filters run first. Ranking by embedding similarity is only
// used when the filtered candidates are still ambiguous. An Assistant wires
// the tables, the embedding provider, the snippet embedding cache and the
// searcher together:
//
//	cfg, _ := config.Load("campusmate.yaml")
//	assistant, err := campusmate.OpenAssistant(cfg)
//	if err != nil {
//		return err
//	}
//	defer assistant.Close()
//	result, err := assistant.AnswerSchedule(ctx, "8월 2일 일정 뭐 있어?")
package campusmate
