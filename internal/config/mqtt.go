/*
 * Copyright (c) 2026. MZCLM Authors -- All Rights Reserved
 *
 * This file is part of MZCLM project.
 *
 * MZCLM is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package config

// MQTTConfig describes the broker connection and the topic root under
// which commands are consumed and observables published.
type MQTTConfig struct {
	URL       string `yaml:"url"`
	Username  string `yaml:"username,omitempty"`
	Password  string `yaml:"password,omitempty"`
	BaseTopic string `yaml:"base_topic"`
}

func NewMQTTConfig() *MQTTConfig {
	cfg := &MQTTConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *MQTTConfig) FillDefaults() {
	if c.URL == "" {
		c.URL = defaultMQTTURL
	}
	if c.BaseTopic == "" {
		c.BaseTopic = defaultBaseTopic
	}
}
